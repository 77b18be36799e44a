package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/ypa-web/internal/api"
	"github.com/baharkarakas/ypa-web/internal/auth"
	"github.com/baharkarakas/ypa-web/internal/config"
	"github.com/baharkarakas/ypa-web/internal/logger"
	"github.com/baharkarakas/ypa-web/internal/metrics"
	"github.com/baharkarakas/ypa-web/internal/remote"
	"github.com/baharkarakas/ypa-web/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	policy := auth.ThrottlePolicy{
		MaxFailures: cfg.LoginMaxFailures,
		Window:      cfg.LoginWindow,
		Lockout:     cfg.LoginLockout,
	}
	var throttle auth.Throttle = auth.NewMemoryThrottle(policy)
	if cfg.RedisURL != "" {
		rt, err := auth.OpenRedisThrottle(ctx, cfg.RedisURL, policy)
		if err != nil {
			log.Error("redis", "err", err)
			os.Exit(1)
		}
		defer func() { _ = rt.Close() }()
		throttle = rt
	}

	rc := remote.New(cfg.APIBaseURL, cfg.RemoteTimeout)
	catalog := services.NewCatalogService(rc)

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:         cfg,
		Authn:       auth.NewAuthenticator(rc, throttle),
		Submissions: services.NewSubmissionService(rc),
		Catalog:     catalog,
		Admin:       services.NewAdminService(rc, catalog),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("web edge starting", "port", cfg.HTTPPort, "backend", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
