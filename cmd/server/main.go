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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inquirydesk/backend/internal/config"
	"github.com/inquirydesk/backend/internal/handler"
	"github.com/inquirydesk/backend/internal/logging"
	"github.com/inquirydesk/backend/internal/metrics"
	"github.com/inquirydesk/backend/internal/repository"
	"github.com/inquirydesk/backend/internal/service"
	"github.com/inquirydesk/backend/pkg/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logging is not configured yet
		logging.Setup("")
		logging.Fatal("load config failed", "error", err)
	}
	logging.Setup(cfg.LogLevel)

	pool, err := repository.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to connect to database", "error", err)
	}
	defer pool.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	submissionRepo := repository.NewPgSubmissionRepository(pool)
	submissionService := service.NewSubmissionService(submissionRepo)

	h := handler.New(pool, cfg.FrontendURL)
	submissionHandler := handler.NewSubmissionHandler(submissionService, m)
	privacyHandler := handler.NewPrivacyHandler(cfg.PrivacyNoticePath)

	if cfg.AdminAuthMode == auth.ModeOpen {
		slog.Warn("admin API is not authenticated; set ADMIN_AUTH_MODE=token to require a bearer token")
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(handler.SecurityHeaders)
	r.Use(h.CORS)
	r.Use(handler.RequestLogger(m))

	r.Get("/api/health", h.Health)
	r.Get("/api/privacy", privacyHandler.Notice)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	submissionHandler.RegisterRoutes(r, auth.Gate(cfg.AdminAuthMode, cfg.AdminToken))

	server := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr, "admin_auth", string(cfg.AdminAuthMode))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	slog.Info("server stopped")
}
