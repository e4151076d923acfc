// Copyright (c) 2025-2026 TDA Solutions
// SPDX-License-Identifier: GPL-3.0-or-later

// Command sitecms runs the CMS backend API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/tdasolutions/sitecms/internal/audit"
	"github.com/tdasolutions/sitecms/internal/config"
	"github.com/tdasolutions/sitecms/internal/handler"
	"github.com/tdasolutions/sitecms/internal/mailer"
	"github.com/tdasolutions/sitecms/internal/middleware"
	"github.com/tdasolutions/sitecms/internal/store"
	"github.com/tdasolutions/sitecms/internal/version"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	setupLogger(cfg)
	slog.Info("starting sitecms",
		"version", version.Version,
		"commit", version.GitCommit,
		"env", cfg.Env,
	)

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}
	if cfg.SMTPConfigured() {
		if err := store.SeedEmailSettings(ctx, db, store.EmailSettingsParams{
			SMTPHost:     cfg.SMTPHost,
			SMTPPort:     int64(cfg.SMTPPort),
			SMTPUsername: cfg.SMTPUsername,
			SMTPPassword: cfg.SMTPPassword,
			SMTPSecure:   cfg.SMTPSecure,
			FromEmail:    cfg.FromEmail,
			FromName:     cfg.FromName,
		}); err != nil {
			return fmt.Errorf("seeding email settings: %w", err)
		}
	}

	auditLogger := audit.NewLogger(db)
	m := mailer.New(db, cfg.ContactRecipient)
	login := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	h := handler.NewHandler(db, cfg, m, auditLogger, login)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.JWTSecret)[:32], cfg.IsDevelopment())))

	r.Mount("/api", h.Routes())

	// Nightly audit retention purge.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		retention := time.Duration(cfg.AuditRetentionDays) * 24 * time.Hour
		purged, err := auditLogger.Purge(context.Background(), retention)
		if err != nil {
			slog.Error("audit purge failed", "error", err)
			return
		}
		slog.Info("audit purge complete", "purged", purged, "retention_days", cfg.AuditRetentionDays)
	}); err != nil {
		return fmt.Errorf("scheduling audit purge: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// setupLogger configures the process-wide slog default. Development gets
// human-readable text, everything else JSON.
func setupLogger(cfg *config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var logHandler slog.Handler
	if cfg.IsDevelopment() {
		logHandler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		logHandler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(logHandler))
}
