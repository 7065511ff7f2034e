package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/parking-microservice/internal/config"
	httpDelivery "github.com/parking-microservice/internal/delivery/http"
	"github.com/parking-microservice/internal/delivery/http/handler"
	"github.com/parking-microservice/internal/domain"
	"github.com/parking-microservice/internal/domain/repository"
	"github.com/parking-microservice/internal/pkg/logger"
	"github.com/parking-microservice/internal/repository/cache"
	"github.com/parking-microservice/internal/repository/geojson"
	"github.com/parking-microservice/internal/usecase"
	"github.com/parking-microservice/internal/zoneindex"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Parking Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Load static zone datasets and build indexes (once per process;
	// changed data requires a restart)
	paidSources, err := geojson.LoadPaidZones(cfg.Zones.PaidZonesPath, log)
	if err != nil {
		log.Fatal("Failed to load paid zones", zap.Error(err))
	}

	permitSources, err := geojson.LoadPermitZones(cfg.Zones.PermitZonesPath, log)
	if err != nil {
		log.Fatal("Failed to load permit zones", zap.Error(err))
	}

	rateRules, err := geojson.LoadRateRules(cfg.Zones.RateRulesPath)
	if err != nil {
		log.Fatal("Failed to load rate crosswalk", zap.Error(err))
	}
	rateTable := domain.NewRateTable(rateRules)
	log.Info("Rate crosswalk loaded", zap.Int("rules", rateTable.Len()))

	paidIndex := zoneindex.Build("paid", paidSources,
		func(attrs domain.PaidZoneAttributes) (string, string, bool) {
			rule, ok := rateTable.Resolve(attrs.Zone, attrs.MeterType)
			if !ok {
				return "", "", false
			}
			return rule.Code, rule.Description, true
		}, log)

	permitIndex := zoneindex.Build("residential", permitSources, nil, log)

	// 4. Connect to Redis (optional: the service degrades to uncached
	// computation when disabled or unavailable)
	var cacheRepo repository.CacheRepository
	var redisClient *cache.Redis
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Warn("Redis unavailable, running without response cache", zap.Error(err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error("Failed to close Redis connection", zap.Error(err))
				}
			}()

			healthCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := redisClient.Health(healthCtx); err != nil {
				log.Warn("Redis health check failed, running without response cache", zap.Error(err))
			} else {
				cacheRepo = cache.NewCacheRepository(redisClient)
			}
			cancel()
		}
	}

	// 5. Initialize Use Cases
	zoneUC := usecase.NewZoneUseCase(paidIndex, permitIndex, cfg.Policy, log)
	recommendationUC := usecase.NewRecommendationUseCase(
		paidIndex,
		permitIndex,
		cacheRepo,
		cfg.Policy,
		cfg.Cache.RecommendationTTL,
		log,
	)

	log.Info("Use cases initialized")

	// 6. Initialize HTTP Handlers
	zoneHandler := handler.NewZoneHandler(zoneUC, log)
	recommendationHandler := handler.NewRecommendationHandler(recommendationUC, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(cfg, log, zoneHandler, recommendationHandler)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
