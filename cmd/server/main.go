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

	"anoa.com/videohub/internal/bootstrap"
	"anoa.com/videohub/internal/config"
	"anoa.com/videohub/internal/server"
	"anoa.com/videohub/pkg/database"
	"anoa.com/videohub/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(database.Options{
		Driver:     cfg.DBDriver,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPass,
		Name:       cfg.DBName,
		SQLitePath: cfg.DBSQLitePath,
		Debug:      cfg.IsDevelopment(),
	})
	if err != nil {
		logger.Log.Fatal("failed to connect database", zap.Error(err))
	}
	defer database.Close(db)

	if err := bootstrap.Migrate(db); err != nil {
		logger.Log.Fatal("migration failed", zap.Error(err))
	}
	if cfg.IsDevelopment() {
		if err := bootstrap.SeedDemoUser(db); err != nil {
			logger.Log.Fatal("failed to seed demo user", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Log.Warn("redis unreachable, rate limits and logout revocation degrade", zap.Error(err))
		}
		cancel()
	} else {
		logger.Log.Info("REDIS_URL not set, running without rate limits and token revocation")
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliSearchHost != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	}

	srv, err := server.NewServer(server.Deps{
		Config:      cfg,
		DB:          db,
		RedisClient: redisClient,
		MeiliClient: meiliClient,
	})
	if err != nil {
		logger.Log.Fatal("failed to build server", zap.Error(err))
	}

	jobsCtx, stopJobs := context.WithCancel(context.Background())
	defer stopJobs()
	srv.StartJobs(jobsCtx)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Log.Info("server listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.AppEnv))
		serverErrors <- httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	case sig := <-shutdown:
		logger.Log.Info("shutdown started", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Log.Error("graceful shutdown failed", zap.Error(err))
			_ = httpServer.Close()
		}
		stopJobs()
		srv.StopJobs(ctx)
		logger.Log.Info("shutdown complete")
	}
}
