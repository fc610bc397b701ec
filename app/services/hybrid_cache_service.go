package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/corpresolve/corpmatch/app/models"
)

// HybridCacheService combines a Redis L1 with a MongoDB L2 cache.
type HybridCacheService struct {
	redisCache *RedisCacheService
	mongoCache *MongoCacheService
	logger     *zap.Logger
}

// NewHybridCacheService wires the two backing caches together.
func NewHybridCacheService(redisCache *RedisCacheService, mongoCache *MongoCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{redisCache: redisCache, mongoCache: mongoCache, logger: logger}
}

func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.MatchResult, bool, error) {
	result, found, err := hcs.redisCache.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis cache error, falling back to mongo", zap.Error(err))
	} else if found {
		return result, true, nil
	}

	result, found, err = hcs.mongoCache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hcs.redisCache.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("failed to sync mongo result into redis", zap.Error(err), zap.String("key", key))
		}
	}()

	return result, true, nil
}

func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.MatchResult) error {
	errCh := make(chan error, 2)

	go func() { errCh <- hcs.redisCache.Set(ctx, key, result) }()
	go func() { errCh <- hcs.mongoCache.Set(ctx, key, result) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache errors: %v", errs)
	}
	return nil
}

func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	errCh := make(chan error, 2)
	go func() { errCh <- hcs.redisCache.Delete(ctx, key) }()
	go func() { errCh <- hcs.mongoCache.Delete(ctx, key) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("delete errors: %v", errs)
	}
	return nil
}

func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	errCh := make(chan error, 2)
	go func() { errCh <- hcs.redisCache.Clear(ctx) }()
	go func() { errCh <- hcs.mongoCache.Clear(ctx) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("clear errors: %v", errs)
	}
	return nil
}

func (hcs *HybridCacheService) InvalidateByCatalogVersion(ctx context.Context, catalogVersion string) error {
	errCh := make(chan error, 2)
	go func() { errCh <- hcs.redisCache.InvalidateByCatalogVersion(ctx, catalogVersion) }()
	go func() { errCh <- hcs.mongoCache.InvalidateByCatalogVersion(ctx, catalogVersion) }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalidate errors: %v", errs)
	}
	return nil
}

func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	redisStats, redisErr := hcs.redisCache.GetStats(ctx)
	mongoStats, mongoErr := hcs.mongoCache.GetStats(ctx)

	if redisErr != nil && mongoErr != nil {
		return nil, fmt.Errorf("both backends failed: %v, %v", redisErr, mongoErr)
	}

	combined := &CacheStats{}
	switch {
	case redisErr == nil && mongoErr == nil:
		totalHits := redisStats.TotalHits + mongoStats.TotalHits
		totalMiss := redisStats.TotalMiss + mongoStats.TotalMiss
		if total := totalHits + totalMiss; total > 0 {
			combined.HitRate = float64(totalHits) / float64(total)
		}
		combined.TotalHits = totalHits
		combined.TotalMiss = totalMiss
		combined.TotalItems = redisStats.TotalItems + mongoStats.TotalItems
	case redisErr == nil:
		*combined = *redisStats
	default:
		*combined = *mongoStats
	}
	return combined, nil
}

func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := hcs.redisCache.Exists(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis exists check failed, falling back to mongo", zap.Error(err))
	} else if exists {
		return true, nil
	}
	return hcs.mongoCache.Exists(ctx, key)
}

func (hcs *HybridCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return hcs.redisCache.GetTTL(ctx, key)
}

func (hcs *HybridCacheService) Close() error {
	errCh := make(chan error, 2)
	go func() { errCh <- hcs.redisCache.Close() }()
	go func() { errCh <- hcs.mongoCache.Close() }()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// WarmUpFromMongoDB preloads the MongoDB cache's in-process LRU from
// MongoDB's most popular entries; Redis is not touched.
func (hcs *HybridCacheService) WarmUpFromMongoDB(ctx context.Context, limit int) error {
	return hcs.mongoCache.WarmUp(ctx, limit)
}
