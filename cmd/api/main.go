package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voteflow/poll-system/internal/api"
	"github.com/voteflow/poll-system/internal/api/middleware"
	"github.com/voteflow/poll-system/internal/core/ports"
	"github.com/voteflow/poll-system/internal/infrastructure/config"
	"github.com/voteflow/poll-system/internal/infrastructure/db/mongo"
	"github.com/voteflow/poll-system/internal/infrastructure/db/redis"
	"github.com/voteflow/poll-system/internal/infrastructure/storage/jsonfile"
	"github.com/voteflow/poll-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx := context.Background()
	readiness := make(map[string]func(context.Context) error)

	// --- Persistence ---
	var (
		polls ports.PollStore
		users ports.UserStore
	)
	switch cfg.Storage.Driver {
	case "file":
		if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
			log.Fatal().Err(err).Str("dir", cfg.Storage.Dir).Msg("failed to create data directory")
		}
		polls = jsonfile.NewPollStore(cfg.Storage.Dir)
		users = jsonfile.NewUserStore(cfg.Storage.Dir)
		log.Info().Str("dir", cfg.Storage.Dir).Msg("using file storage")
	case "mongo":
		client, db, err := mongo.Connect(ctx, mongo.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to mongodb")
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()
		polls = mongo.NewPollStore(db)
		users = mongo.NewUserStore(db)
		readiness["mongodb"] = func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb storage")
	default:
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("unknown storage driver")
	}

	// --- Auth throttle ---
	var limiter middleware.Allower = middleware.NewSlidingWindow(cfg.Throttle.Limit, cfg.Throttle.Window)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer func() {
			_ = rdb.Close()
		}()
		limiter = redis.NewFixedWindowLimiter(rdb, "auth", cfg.Throttle.Limit, cfg.Throttle.Window)
		readiness["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis-backed auth throttle")
	}

	e := api.NewRouter(polls, users, limiter, cfg, log, readiness)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting http server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
