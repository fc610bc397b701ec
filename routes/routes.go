// Package routes wires Gin endpoint groups to the controllers:
// api.go for the /v1 corporate-name matching and admin endpoints,
// web.go for the root landing/docs pages, routes.go for the combined
// entry point.
//
// Usage:
// routes.SetupAllRoutes(router, dedupeController, adminController)
package routes
