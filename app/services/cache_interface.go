package services

import (
	"context"
	"time"

	"github.com/corpresolve/corpmatch/app/models"
)

// CacheStats reports aggregate hit/miss counters for a cache backend.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService caches MatchResults by a caller-chosen key (the
// commutative pair fingerprint computed in DedupeService).
type ICacheService interface {
	Get(ctx context.Context, key string) (*models.MatchResult, bool, error)
	Set(ctx context.Context, key string, result *models.MatchResult) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	// InvalidateByCatalogVersion drops cached scores computed against a
	// stale legal-form catalog build.
	InvalidateByCatalogVersion(ctx context.Context, catalogVersion string) error
	GetStats(ctx context.Context) (*CacheStats, error)
	Exists(ctx context.Context, key string) (bool, error)
	GetTTL(ctx context.Context, key string) (time.Duration, error)
	Close() error
}
