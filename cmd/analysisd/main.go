// analysisd serves the idea-analysis request-processing core over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/LaunchLens/analysis_layer/internal/app"
	"github.com/LaunchLens/analysis_layer/internal/app/httpapi"
	"github.com/LaunchLens/analysis_layer/internal/app/services"
	"github.com/LaunchLens/analysis_layer/internal/config"
	"github.com/LaunchLens/analysis_layer/internal/storage"
	"github.com/LaunchLens/analysis_layer/internal/storage/memory"
	"github.com/LaunchLens/analysis_layer/internal/storage/postgres"
	"github.com/LaunchLens/analysis_layer/internal/storage/supabase"
	"github.com/LaunchLens/analysis_layer/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New("analysisd", cfg.LogLevel)

	store, err := buildStore(cfg)
	if err != nil {
		log.WithError(err).Error("storage init failed")
		os.Exit(1)
	}
	log.WithField("backend", cfg.Backend).Info("storage ready")

	core := app.New(store, services.Unconfigured{}, services.Unconfigured{}, log)
	server := httpapi.NewServer(
		core,
		httpapi.NewAuthenticator(cfg.JWTSecret, log),
		httpapi.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		httpapi.NewMetrics(prometheus.DefaultRegisterer),
		log,
	)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("server failed")
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown incomplete")
		os.Exit(1)
	}
	log.Info("stopped")
}

func buildStore(cfg config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendSupabase:
		client, err := supabase.NewClient(supabase.Config{
			ProjectURL: cfg.SupabaseURL,
			ServiceKey: cfg.SupabaseServiceKey,
			Timeout:    cfg.SupabaseTimeout,
		})
		if err != nil {
			return nil, err
		}
		return supabase.New(client), nil
	case config.BackendPostgres:
		return postgres.Open(cfg.DatabaseURL)
	case config.BackendMemory:
		return memory.New(), nil
	}
	return nil, fmt.Errorf("unknown backend: %q", cfg.Backend)
}
