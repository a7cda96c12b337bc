package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docfill/internal/api"
	"docfill/internal/config"
	"docfill/internal/question"
	"docfill/internal/session"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Question source: deterministic templates, wrapped by Claude
	// enrichment when an API key is configured.
	stats := question.NewStats(time.Hour)
	var src question.Source = question.TemplateSource{}
	var claude *question.Client
	if cfg.AnthropicAPIKey != "" {
		claude = question.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.ContextExcerptBytes)
		quota := question.NewQuota(cfg.EnrichQuota, cfg.EnrichQuotaWindow)
		src = question.NewEnrichedSource(claude, quota, stats, log)
	} else {
		log.Info("ANTHROPIC_API_KEY not set, question enrichment disabled")
	}

	sessions := session.NewStore(cfg.SessionTTL)

	// Sweep expired sessions.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sessions.Cleanup()
			}
		}
	}()

	srv := api.NewServer(sessions, src, stats, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if claude != nil {
			claude.Close()
		}
	}()

	log.Info("starting docfill", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
