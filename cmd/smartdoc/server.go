package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wandile0157/smartdoc-ai-backend/internal/telemetry"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the SmartDoc AI HTTP server",
	Long: `Start the SmartDoc AI HTTP server on the configured port (default :8000).

The server exposes the analysis API, interactive docs at /docs, and a health
check at /api/v1/health. It shuts down cleanly on SIGTERM or SIGINT.`,
	RunE: runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// OTEL is best-effort: a missing collector must never block startup.
	if cfg.Telemetry.OTLPEndpoint == "" {
		slog.Info("OTEL telemetry disabled (no endpoint configured)")
	} else {
		tp, err := telemetry.InitProvider(
			ctx,
			cfg.Telemetry.OTLPEndpoint,
			cfg.Telemetry.ServiceName,
			cfg.App.Version,
			cfg.Telemetry.OTLPInsecure,
		)
		if err != nil {
			slog.Warn("OTEL provider init failed, telemetry disabled", "err", err)
		} else {
			defer func() {
				shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if shutErr := tp.Shutdown(shutCtx); shutErr != nil {
					slog.Warn("OTEL shutdown error", "err", shutErr)
				}
			}()
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("smartdoc server listening",
			"addr", addr,
			"environment", cfg.App.Environment,
			"version", cfg.App.Version,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	slog.Info("server stopped cleanly")
	return nil
}
