package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nulzo/prompt-optimizer-api/cmd"
	"github.com/nulzo/prompt-optimizer-api/internal/config"
	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/core/services"
	"github.com/nulzo/prompt-optimizer-api/internal/platform/logger"
	"github.com/nulzo/prompt-optimizer-api/internal/platform/otel"
	"github.com/nulzo/prompt-optimizer-api/internal/registry"
	"github.com/nulzo/prompt-optimizer-api/internal/scenarios"
	"github.com/nulzo/prompt-optimizer-api/internal/server"
	"github.com/nulzo/prompt-optimizer-api/internal/store"
	"github.com/nulzo/prompt-optimizer-api/internal/store/cache"
	"github.com/nulzo/prompt-optimizer-api/internal/store/cache/memory"
	"github.com/nulzo/prompt-optimizer-api/internal/store/cache/redis"
	"github.com/nulzo/prompt-optimizer-api/internal/store/sqlite"

	// Import adapters to trigger init() registration
	_ "github.com/nulzo/prompt-optimizer-api/internal/adapters/optimizer/bedrock"
	_ "github.com/nulzo/prompt-optimizer-api/internal/adapters/optimizer/mock"
)

const serviceName = "prompt-optimizer-api"

func main() {
	go cmd.CheckForUpdates()

	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 2. Logger
	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()
	zlog := logger.Get()

	// 3. Tracing
	shutdownTracer, err := otel.InitTracer(serviceName, zlog, os.Stdout)
	if err != nil {
		zlog.Fatal("failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			zlog.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	// 4. Target Table
	targets, err := cfg.TargetTable()
	if err != nil {
		zlog.Fatal("invalid target configuration", zap.Error(err))
	}

	// 5. Cache Backend
	var cacheSvc cache.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := redis.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zlog.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		cacheSvc = redisCache
		zlog.Info("using redis cache", zap.String("addr", cfg.Redis.Addr))
	} else {
		cacheSvc = memory.NewMemoryCache()
		zlog.Info("using in-memory cache")
	}

	// 6. Run History Store
	var repo store.Repository
	if cfg.Database.Enabled {
		repo, err = sqlite.NewSQLiteStorage(cfg.Database.DSN)
		if err != nil {
			zlog.Fatal("failed to open database", zap.Error(err))
		}
		defer repo.Close()
	} else {
		zlog.Info("run history disabled")
	}

	// 7. Optimizer Adapter
	optimizer, err := registry.Create(cfg.Optimizer)
	if err != nil {
		zlog.Fatal("failed to create optimizer",
			zap.String("type", cfg.Optimizer.Type),
			zap.Error(err),
		)
	}
	zlog.Info("optimizer ready", zap.String("optimizer", optimizer.Name()))

	// 8. Scenario Collection
	var collection []domain.Scenario
	if cfg.ScenarioFile != "" {
		collection, err = scenarios.LoadFile(cfg.ScenarioFile)
		if err != nil {
			zlog.Fatal("failed to load scenario file", zap.Error(err))
		}
	} else {
		collection = scenarios.Default()
	}

	// 9. Core Services
	resolver := services.NewResolver(targets, optimizer, cacheSvc, zlog)
	batch := services.NewBatchOptimizer(resolver, repo, cfg.Batch.FailFast, zlog)

	// 10. HTTP Server
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.New(cfg, zlog, resolver, batch, collection, repo).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting prompt optimizer API",
			zap.String("port", cfg.Server.Port),
			zap.String("env", cfg.Server.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("forced shutdown", zap.Error(err))
	}
}
