package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/ypa-web/internal/backend"
	"github.com/baharkarakas/ypa-web/internal/config"
	"github.com/baharkarakas/ypa-web/internal/db"
	"github.com/baharkarakas/ypa-web/internal/logger"
	"github.com/baharkarakas/ypa-web/internal/metrics"
	"github.com/baharkarakas/ypa-web/internal/repository/postgres"
)

func main() {
	cfg, err := config.LoadBackend()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	repos := postgres.NewRepositories(pool)
	tm := backend.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	users := backend.NewUserService(repos.Users, tm)
	if err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Error("seed admin", "err", err)
		os.Exit(1)
	}

	metrics.Init()
	h := backend.NewHandler(users, backend.Stores{
		Bookings: repos.Bookings,
		Contact:  repos.Contact,
		Reviews:  repos.Reviews,
		Content:  repos.Content,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           backend.NewRouter(h, tm),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("devapi starting", "port", cfg.HTTPPort)
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
