package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/corpresolve/corpmatch/app/models"
)

// MongoCacheService is the L2, persistent cache of MatchResults, backed
// by MongoDB with an in-process LRU front (L1 of this service, distinct
// from the Redis L1 used by HybridCacheService).
type MongoCacheService struct {
	collection *mongo.Collection
	l1Cache    *lru.Cache[string, *models.MatchResult]
	logger     *zap.Logger

	totalHits, totalMiss int64
	l1Hits, l1Miss       int64
	mongoHits, mongoMiss int64
}

// NewMongoCacheService opens the backing collection and its indexes.
func NewMongoCacheService(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, *models.MatchResult](l1Size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}

	collection := db.Collection("match_cache")
	indexModels := []mongo.IndexModel{
		{Keys: bson.D{bson.E{Key: "fingerprint", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{bson.E{Key: "created_at", Value: 1}}},
		{Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("failed to create match_cache indexes", zap.Error(err))
	}

	return &MongoCacheService{
		collection: collection,
		l1Cache:    l1Cache,
		logger:     logger,
	}, nil
}

func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.MatchResult, bool, error) {
	if result, found := mcs.l1Cache.Get(key); found {
		mcs.l1Hits++
		mcs.totalHits++
		return result, true, nil
	}
	mcs.l1Miss++

	fingerprint := mcs.generateFingerprint(key)
	var entry models.MatchCache
	err := mcs.collection.FindOne(ctx, bson.M{"fingerprint": fingerprint}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			mcs.mongoMiss++
			mcs.totalMiss++
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query match cache: %w", err)
	}

	mcs.mongoHits++
	mcs.totalHits++
	go mcs.updateAccessStats(ctx, entry.ID)
	mcs.l1Cache.Add(key, &entry.Result)

	return &entry.Result, true, nil
}

func (mcs *MongoCacheService) Set(ctx context.Context, key string, result *models.MatchResult) error {
	mcs.l1Cache.Add(key, result)

	fingerprint := mcs.generateFingerprint(key)
	entry := models.NewMatchCache(fingerprint, *result)

	opts := options.Replace().SetUpsert(true)
	_, err := mcs.collection.ReplaceOne(ctx, bson.M{"fingerprint": fingerprint}, entry, opts)
	if err != nil {
		mcs.logger.Error("failed to persist match cache entry", zap.Error(err), zap.String("fingerprint", fingerprint))
		return fmt.Errorf("persist match cache entry: %w", err)
	}
	return nil
}

func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)
	fingerprint := mcs.generateFingerprint(key)
	_, err := mcs.collection.DeleteOne(ctx, bson.M{"fingerprint": fingerprint})
	if err != nil {
		return fmt.Errorf("delete match cache entry: %w", err)
	}
	return nil
}

func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()
	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear match cache: %w", err)
	}
	mcs.totalHits, mcs.totalMiss = 0, 0
	mcs.l1Hits, mcs.l1Miss = 0, 0
	mcs.mongoHits, mcs.mongoMiss = 0, 0
	return nil
}

// InvalidateByCatalogVersion clears the whole cache: entries carry no
// catalog-version tag, so catalogVersion is not used.
func (mcs *MongoCacheService) InvalidateByCatalogVersion(ctx context.Context, catalogVersion string) error {
	return mcs.Clear(ctx)
}

func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	mongoCount, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count match cache documents: %w", err)
	}

	total := mcs.totalHits + mcs.totalMiss
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(mcs.totalHits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  mcs.totalHits,
		TotalMiss:  mcs.totalMiss,
		TotalItems: mongoCount,
	}, nil
}

func (mcs *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if mcs.l1Cache.Contains(key) {
		return true, nil
	}
	fingerprint := mcs.generateFingerprint(key)
	count, err := mcs.collection.CountDocuments(ctx, bson.M{"fingerprint": fingerprint})
	if err != nil {
		return false, fmt.Errorf("check match cache existence: %w", err)
	}
	return count > 0, nil
}

func (mcs *MongoCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

func (mcs *MongoCacheService) Close() error {
	return nil
}

func (mcs *MongoCacheService) generateFingerprint(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("sha256:%x", hash)
}

func (mcs *MongoCacheService) updateAccessStats(ctx context.Context, id primitive.ObjectID) {
	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}
	if _, err := mcs.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		mcs.logger.Warn("failed to update access stats", zap.Error(err))
	}
}

// WarmUp preloads the L1 LRU with the most-accessed entries.
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("warm up match cache: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var entry models.MatchCache
		if err := cursor.Decode(&entry); err != nil {
			mcs.logger.Warn("failed to decode cache entry during warm up", zap.Error(err))
			continue
		}
		mcs.l1Cache.Add(entry.Fingerprint, &entry.Result)
		count++
	}

	mcs.logger.Info("match cache warm up complete", zap.Int("loaded_items", count))
	return nil
}
