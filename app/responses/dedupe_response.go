package responses

import "github.com/corpresolve/corpmatch/app/models"

// MatchNamesResponse is the response to a single pairwise match request.
type MatchNamesResponse struct {
	Score      float64 `json:"score"`
	HasOpinion bool    `json:"has_opinion"`
}

// FindDuplicatesResponse acknowledges a submitted batch job (spec §4.6),
// mirroring the teacher's BatchParseResponse shape.
type FindDuplicatesResponse struct {
	JobID      string `json:"job_id"`
	TotalNames int    `json:"total_names"`
	Message    string `json:"message"`
}

// JobStatusResponse reports the current state of a submitted job.
type JobStatusResponse struct {
	JobID       string                  `json:"job_id"`
	Status      string                  `json:"status"`
	TotalNames  int                     `json:"total_names"`
	PairsFound  int                     `json:"pairs_found,omitempty"`
	Error       string                  `json:"error,omitempty"`
	Pairs       []models.DuplicatePair  `json:"pairs,omitempty"`
}

// LegalFormResponse reports the legal form recognized in a name, if any.
type LegalFormResponse struct {
	LegalForm string `json:"legal_form,omitempty"`
	Found     bool   `json:"found"`
}

// CleanNameResponse reports a cleaned company name.
type CleanNameResponse struct {
	Cleaned string `json:"cleaned"`
}

// ReviewListResponse lists queued borderline pairs awaiting adjudication.
type ReviewListResponse struct {
	Reviews []*models.DuplicateReview `json:"reviews"`
	Total   int                       `json:"total"`
}

// ReviewDecisionResponse confirms a recorded review decision.
type ReviewDecisionResponse struct {
	Review *models.DuplicateReview `json:"review"`
}

// AdminStatsResponse reports aggregate cache and review-queue
// statistics, mirroring the teacher's AdminStatsResponse. GetStats
// does not fill CatalogSize or UptimeSeconds; both stay zero.
type AdminStatsResponse struct {
	CacheHitRate  float64 `json:"cache_hit_rate"`
	TotalCached   int64   `json:"total_cached"`
	CatalogSize   int     `json:"catalog_size"`
	PendingReview int     `json:"pending_review"`
	UptimeSeconds int64   `json:"uptime_seconds"`
}

// ErrorResponse reports a request-level failure.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthCheckResponse reports service health.
type HealthCheckResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}
