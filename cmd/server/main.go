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

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/segyhp/debt-planner/internal/config"
	"github.com/segyhp/debt-planner/internal/handler"
	"github.com/segyhp/debt-planner/internal/repository"
	"github.com/segyhp/debt-planner/internal/schedule"
	"github.com/segyhp/debt-planner/internal/scheduler"
	"github.com/segyhp/debt-planner/internal/service"
	"github.com/segyhp/debt-planner/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	zap.ReplaceGlobals(zl)

	// Initialize response cache
	cache, closeCache := initCache(cfg, zl)
	defer closeCache()

	scheduleCache := schedule.NewCache(cfg.Cache.ScheduleSize)

	// Initialize service
	plannerService := service.NewPlannerService(scheduleCache, cache, cfg.GetProjectionTTL(), zl)
	plannerHandler := handler.NewPlannerHandler(plannerService, zl)
	healthHandler := handler.NewHealthHandler(cache, scheduleCache, cfg.GetHealthTimeout())

	// Schedule maintenance jobs
	jobs := scheduler.New(scheduleCache, zl)
	if err := jobs.RegisterCachePurge(cfg.Cache.PurgeCron); err != nil {
		zl.Fatal("Failed to schedule cache purge", zap.Error(err))
	}
	jobs.Start()
	defer jobs.Stop()

	// Start server
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler.NewRouter(plannerHandler, healthHandler, zl),
		ReadTimeout:  cfg.GetReadTimeout(),
		WriteTimeout: cfg.GetWriteTimeout(),
	}

	// Start server in a goroutine
	go func() {
		zl.Info("Server starting", zap.String("addr", server.Addr), zap.String("env", cfg.Server.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}

	zl.Info("Server exited")
}

// initCache returns the Redis cache when enabled, otherwise an in-process one
func initCache(cfg *config.Config, zl *zap.Logger) (repository.CacheRepository, func()) {
	if !cfg.Redis.Enabled {
		zl.Info("Redis disabled, using in-memory projection cache")
		return repository.NewMemoryCache(cfg.Cache.ProjectionSize, cfg.GetProjectionTTL()), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.GetHealthTimeout())
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		zl.Warn("Redis not reachable at startup", zap.String("addr", cfg.RedisAddr()), zap.Error(err))
	}

	return repository.NewRedisCache(client, "debt-planner:"), func() { _ = client.Close() }
}
