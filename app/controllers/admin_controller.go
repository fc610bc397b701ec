package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/corpresolve/corpmatch/app/requests"
	"github.com/corpresolve/corpmatch/app/responses"
	"github.com/corpresolve/corpmatch/app/services"
)

// AdminController exposes operator-facing endpoints: cache stats,
// cache invalidation, and the borderline-pair review queue, mirroring
// the teacher's AdminController layering.
type AdminController struct {
	dedupe *services.DedupeService
	cache  services.ICacheService
	logger *zap.Logger
}

// NewAdminController builds the admin controller over the already-wired
// dedupe service and its cache.
func NewAdminController(dedupe *services.DedupeService, cache services.ICacheService, logger *zap.Logger) *AdminController {
	return &AdminController{dedupe: dedupe, cache: cache, logger: logger}
}

// GetStats reports aggregate cache and review-queue statistics.
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.cache.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: "STATS_ERROR", Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, responses.AdminStatsResponse{
		CacheHitRate:  stats.HitRate,
		TotalCached:   stats.TotalItems,
		PendingReview: len(ac.dedupe.ListReviews()),
	})
}

// InvalidateCache drops every cached score, e.g. after a legal-form
// catalog rebuild.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	if err := ac.cache.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{Error: "CACHE_CLEAR_ERROR", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cache invalidated"})
}

// ListReviews lists every queued borderline pair awaiting adjudication.
func (ac *AdminController) ListReviews(c *gin.Context) {
	reviews := ac.dedupe.ListReviews()
	c.JSON(http.StatusOK, responses.ReviewListResponse{Reviews: reviews, Total: len(reviews)})
}

// DecideReview records a reviewer's approve/reject decision for a
// queued pair.
func (ac *AdminController) DecideReview(c *gin.Context) {
	reviewID := c.Param("reviewID")

	var req requests.ReviewDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "INVALID_REQUEST", Message: err.Error()})
		return
	}

	review, ok := ac.dedupe.DecideReview(reviewID, req.ReviewerID, req.Approve)
	if !ok {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{Error: "REVIEW_NOT_FOUND", Message: "no review with id " + reviewID})
		return
	}

	c.JSON(http.StatusOK, responses.ReviewDecisionResponse{Review: review})
}
