// @title        Appointment Portal API
// @version      1.0
// @description  Session-backed portal in front of the appointment platform.
// @host         localhost:8090
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carepoint/appointment-portal/internal/api"
	"github.com/carepoint/appointment-portal/internal/api/middleware"
	"github.com/carepoint/appointment-portal/internal/core/ports"
	"github.com/carepoint/appointment-portal/internal/infrastructure/db/bolt"
	"github.com/carepoint/appointment-portal/internal/infrastructure/db/memory"
	"github.com/carepoint/appointment-portal/internal/infrastructure/db/mongo"
	"github.com/carepoint/appointment-portal/internal/infrastructure/db/redis"
	"github.com/carepoint/appointment-portal/internal/pkg/config"
	"github.com/carepoint/appointment-portal/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 5 * time.Minute
)

func main() {
	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
		App:    "portal",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open client storage")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("close client storage")
		}
	}()
	log.Info().Str("driver", cfg.Storage.Driver).Msg("client storage ready")

	build := api.NewWorkspaceBuilder(api.Backend{
		APIBaseURL:  cfg.Backend.APIBaseURL,
		AuthBaseURL: cfg.Backend.AuthBaseURL,
	}, logger.Component("gateway"))
	sessions := middleware.NewRegistry(store, build, logger.Component("sessions"))
	limiter := middleware.NewRateLimiter(cfg.Session.LoginRatePerSec, cfg.Session.LoginBurst)

	e := api.NewRouter(api.Options{
		Storage:  store,
		Sessions: sessions,
		Limiter:  limiter,
		Cookie: middleware.CookieOptions{
			Secure: cfg.Session.CookieSecure,
			MaxAge: cfg.Session.TTL,
		},
		Log: logger.Component("http"),
	})

	go limiter.Run(ctx)
	go sweep(ctx, sessions, cfg.Session.TTL)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("portal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}

// sweep drops sessions idle for longer than ttl until ctx is done.
func sweep(ctx context.Context, sessions *middleware.Registry, ttl time.Duration) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	log := logger.Component("sessions")
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(ctx, ttl); n > 0 {
				log.Info().Int("dropped", n).Int("live", sessions.Len()).Msg("idle sessions swept")
			}
		}
	}
}

func openStorage(ctx context.Context, cfg *config.Config) (ports.StorageProvider, error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		return redis.Open(ctx, redis.Config{
			Addr:       cfg.Storage.RedisAddr,
			DB:         cfg.Storage.RedisDB,
			SessionTTL: cfg.Session.TTL,
		})
	case config.DriverMongo:
		return mongo.Open(ctx, mongo.Config{
			URI:        cfg.Storage.MongoURI,
			Database:   cfg.Storage.MongoDB,
			SessionTTL: cfg.Session.TTL,
		})
	case config.DriverBolt:
		return bolt.Open(cfg.Storage.BoltPath)
	default:
		return memory.New(), nil
	}
}
