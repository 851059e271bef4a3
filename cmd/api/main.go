package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"librarycatalog/internal/httpx"
	"librarycatalog/internal/library"
	"librarycatalog/internal/logging"
	"librarycatalog/internal/notify"
	"librarycatalog/internal/seed"
)

func main() {
	cfg := loadConfig()
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	registry := library.NewRegistry(newNotifier(cfg, logger), library.WithLogger(logger))
	manager := registry.Manager()
	newMember := func(id string) library.Subscriber { return notify.NewMember(id, logger) }

	if cfg.SeedFile != "" {
		f, err := seed.Load(cfg.SeedFile)
		if err != nil {
			logger.Error("load seed", "error", err)
			os.Exit(1)
		}
		if err := seed.Apply(context.Background(), manager, f, newMember); err != nil {
			logger.Error("apply seed", "error", err)
			os.Exit(1)
		}
		logger.Info("seed applied", "path", cfg.SeedFile, "books", len(f.Books), "members", len(f.Members))
	}

	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustedProxies...)
	defer limiter.Stop()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      newRouter(manager, newMember, cfg, logger, limiter),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("server stopped")
}

func newNotifier(cfg config, logger *slog.Logger) library.Notifier {
	var n library.Notifier = notify.NewLogNotifier(logger)
	if cfg.NotifyRPS > 0 {
		n = notify.NewThrottledNotifier(n, cfg.NotifyRPS, cfg.NotifyBurst, logger)
	}
	return n
}

func newRouter(m *library.Manager, newMember func(string) library.Subscriber, cfg config, logger *slog.Logger, limiter *httpx.RateLimitMiddleware) http.Handler {
	router := http.NewServeMux()
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	library.NewHTTPHandler(m, newMember).Register(router)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware,
		httpx.CORSMiddleware(cfg.CORSOrigins),
		limiter.Middleware,
		httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes),
	)
}
