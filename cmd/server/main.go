package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/roomgate/roomgate/internal/api"
	"github.com/roomgate/roomgate/internal/config"
	"github.com/roomgate/roomgate/internal/events"
	"github.com/roomgate/roomgate/internal/metrics"
	"github.com/roomgate/roomgate/internal/token"
	"github.com/roomgate/roomgate/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to optional YAML config file; environment variables override it")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	slog.Info("token server starting",
		"host", cfg.Host,
		"port", cfg.Port,
		"key_id", cfg.Signing.KeyID,
		"token_ttl_hours", cfg.Token.TTLHours,
		"event_ttl", cfg.Events.TTL,
		"broadcast_auth_mode", cfg.BroadcastAuth.Mode,
		"production", cfg.Production,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Token engine: issuer + orchestrating service.
	issuer := token.NewIssuer(cfg.Signing.KeyID, cfg.Signing.Secret)
	tokens := token.NewService(issuer, cfg.Token.TTLHours, logger)

	// Broadcast hub and the recent-event record behind it.
	hub := ws.New()
	store := events.New(cfg.Events.TTL, cfg.Events.Cap)
	metrics.RegisterListenerCount(hub.Count)

	httpMux := http.NewServeMux()
	httpMux.Handle("/", api.New(tokens, hub, store, cfg.BroadcastAuth))
	httpMux.Handle("/ws", hub)
	httpMux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           httpMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		store.Run(ctx)
		return nil
	})

	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})

	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("token server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
