// Package msclient provides a thin Meilisearch client wrapper used to
// back alias/candidate search over catalogs too large to scan linearly
// (the city-name gazetteer).
package msclient

import (
	"fmt"

	ms "github.com/meilisearch/meilisearch-go"
)

// ClientWrapper wraps a Meilisearch client with a small, stable surface.
type ClientWrapper struct {
	cli ms.ServiceManager
}

// NewClientWrapper creates a new Meilisearch client wrapper.
func NewClientWrapper(url, key string) *ClientWrapper {
	client := ms.New(url, ms.WithAPIKey(key))
	return &ClientWrapper{cli: client}
}

// SearchIndex performs a filtered search against the named index.
func (c *ClientWrapper) SearchIndex(index, q, filter string, limit int64) (*ms.SearchResponse, error) {
	idx := c.cli.Index(index)
	req := &ms.SearchRequest{
		Limit:  limit,
		Filter: filter,
	}
	return idx.Search(q, req)
}

// FilterCountry builds a filter string restricting candidates to a country.
func FilterCountry(country string) string {
	if country == "" {
		return ""
	}
	return fmt.Sprintf("country = %q", country)
}
