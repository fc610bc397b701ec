package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	corpmatch "github.com/corpresolve/corpmatch"
	"github.com/corpresolve/corpmatch/app/config"
	"github.com/corpresolve/corpmatch/app/controllers"
	"github.com/corpresolve/corpmatch/app/services"
	"github.com/corpresolve/corpmatch/data"
	"github.com/corpresolve/corpmatch/internal/msclient"
	"github.com/corpresolve/corpmatch/routes"
)

func main() {
	loadViperConfig()

	if err := config.Load(viper.GetString("scoring.config_path")); err != nil {
		log.Printf("warning: cannot load scoring config: %v", err)
	}

	logger := initLogger()
	defer logger.Sync()

	logger.Info("starting corpmatch duplicate-detection service")

	mongoClient, err := initMongoDB(logger)
	if err != nil {
		logger.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("error disconnecting MongoDB", zap.Error(err))
		}
	}()
	mongoDB := mongoClient.Database(viper.GetString("mongo.database"))

	core, err := corpmatch.Load(corpmatch.Resources{
		LegalFormsJSON:      data.LegalFormsJSON,
		LegalFormAdditions:  data.AdditionLegalFormsTXT,
		ReplacementRulesCSV: data.LegalFormReplacementsCSV,
		CityMappings:        data.CityMappingsTXT,
		NobilityTitles:      data.NobilityTitlesTXT,
		PlaceTitles:         data.TitlesTXT,
		MeiliClient:         initMeilisearch(logger),
		MeiliCityIndex:      "cities",
	})
	if err != nil {
		logger.Fatal("failed to load corpmatch core", zap.Error(err))
	}

	cacheService := initCache(mongoDB, logger)

	dedupeService := services.NewDedupeService(core, cacheService, logger)

	dedupeController := controllers.NewDedupeController(dedupeService, logger)
	adminController := controllers.NewAdminController(dedupeService, cacheService, logger)

	router := gin.Default()
	routes.SetupAllRoutes(router, dedupeController, adminController)

	port := viper.GetString("app.port")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		logger.Info("corpmatch service listening", zap.String("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	if err := cacheService.Close(); err != nil {
		logger.Warn("error closing cache service", zap.Error(err))
	}

	logger.Info("server exited")
}

// loadViperConfig loads app.yaml (if present) plus environment
// overrides, mirroring the teacher's viper wiring.
func loadViperConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("mongo.url", "mongodb://localhost:27017/corpmatch")
	viper.SetDefault("mongo.database", "corpmatch")
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("meilisearch.url", "")
	viper.SetDefault("meilisearch.master_key", "")
	viper.SetDefault("scoring.config_path", "config/scoring.yaml")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("warning: cannot read config file: %v", err)
	}
}

func initLogger() *zap.Logger {
	env := viper.GetString("app.env")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("cannot initialize logger:", err)
	}
	return logger
}

func initMongoDB(logger *zap.Logger) (*mongo.Client, error) {
	mongoURL := viper.GetString("mongo.url")

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logger.Info("connected to MongoDB", zap.String("url", mongoURL))
	return client, nil
}

// initMeilisearch wires the city-matcher's optional search backend.
// An empty URL means the gazetteer runs exact+fuzzy only, no remote
// search fallback (spec §7 degrade, don't fail).
func initMeilisearch(logger *zap.Logger) *msclient.ClientWrapper {
	url := viper.GetString("meilisearch.url")
	if url == "" {
		logger.Info("no meilisearch url configured, city matching runs without search fallback")
		return nil
	}
	return msclient.NewClientWrapper(url, viper.GetString("meilisearch.master_key"))
}

// initCache builds the Redis L1 + MongoDB L2 hybrid cache. It uses the
// MongoDB cache alone when REDIS_URL is unset or Redis is unreachable,
// and an in-process cache when the MongoDB cache cannot be created
// (spec's ambient caching layer is best-effort, never load-bearing for
// correctness).
func initCache(mongoDB *mongo.Database, logger *zap.Logger) services.ICacheService {
	l1Size := getEnvInt("L1_CACHE_SIZE", viper.GetInt("cache.l1_size"))

	mongoCache, err := services.NewMongoCacheService(mongoDB, l1Size, logger)
	if err != nil {
		logger.Warn("failed to initialize MongoDB cache, falling back to in-process cache", zap.Error(err))
		return services.NewCacheService(24 * time.Hour)
	}

	if err := mongoCache.WarmUp(context.Background(), l1Size/2); err != nil {
		logger.Warn("failed to warm up cache", zap.Error(err))
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return mongoCache
	}

	redisCache, err := services.NewRedisCacheService(redisURL, logger)
	if err != nil {
		logger.Warn("failed to initialize Redis cache, using MongoDB cache only", zap.Error(err))
		return mongoCache
	}

	return services.NewHybridCacheService(redisCache, mongoCache, logger)
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
