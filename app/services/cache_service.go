package services

import (
	"context"
	"sync"
	"time"

	"github.com/corpresolve/corpmatch/app/models"
)

// CacheService is an in-process, TTL-evicting cache of MatchResults.
type CacheService struct {
	cache      map[string]*models.MatchResult
	timestamps map[string]time.Time
	mu         sync.RWMutex
	ttl        time.Duration
}

// NewCacheService builds an empty in-memory cache with the given TTL.
func NewCacheService(ttl time.Duration) *CacheService {
	return &CacheService{
		cache:      make(map[string]*models.MatchResult),
		timestamps: make(map[string]time.Time),
		ttl:        ttl,
	}
}

func (cs *CacheService) Get(ctx context.Context, key string) (*models.MatchResult, bool, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if result, exists := cs.cache[key]; exists {
		if cs.isExpired(key) {
			go cs.deleteExpired(key)
			return nil, false, nil
		}
		return result, true, nil
	}
	return nil, false, nil
}

func (cs *CacheService) Set(ctx context.Context, key string, result *models.MatchResult) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.timestamps[key] = time.Now()
	cs.cache[key] = result
	return nil
}

func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
	delete(cs.timestamps, key)
	return nil
}

func (cs *CacheService) Clear(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache = make(map[string]*models.MatchResult)
	cs.timestamps = make(map[string]time.Time)
	return nil
}

// InvalidateByCatalogVersion has no version-keyed index in-process, so
// a catalog reload simply clears everything.
func (cs *CacheService) InvalidateByCatalogVersion(ctx context.Context, catalogVersion string) error {
	return cs.Clear(ctx)
}

func (cs *CacheService) Size() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.cache)
}

func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	total := len(cs.cache)
	expired := 0
	for key := range cs.cache {
		if cs.isExpired(key) {
			expired++
		}
	}

	return &CacheStats{
		TotalItems: int64(total - expired),
	}, nil
}

// CleanupExpired drops every item past its TTL.
func (cs *CacheService) CleanupExpired() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key := range cs.cache {
		if cs.isExpired(key) {
			delete(cs.cache, key)
			delete(cs.timestamps, key)
		}
	}
}

func (cs *CacheService) isExpired(key string) bool {
	timestamp, exists := cs.timestamps[key]
	if !exists {
		return true
	}
	return time.Since(timestamp) > cs.ttl
}

func (cs *CacheService) deleteExpired(key string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.cache, key)
	delete(cs.timestamps, key)
}

func (cs *CacheService) Exists(ctx context.Context, key string) (bool, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	_, exists := cs.cache[key]
	return exists, nil
}

func (cs *CacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	timestamp, exists := cs.timestamps[key]
	if !exists {
		return 0, nil
	}
	remaining := cs.ttl - time.Since(timestamp)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// StartCleanupWorker periodically evicts expired entries in the
// background.
func (cs *CacheService) StartCleanupWorker(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			cs.CleanupExpired()
		}
	}()
}

func (cs *CacheService) Close() error {
	return nil
}
