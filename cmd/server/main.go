// Command server runs the auction transactional core: it connects to
// PostgreSQL, wires the auction, lot and bidding services, serves the
// operational probes over HTTP, and blocks until SIGINT or SIGTERM.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hammerhouse/auction-backend/internal/app"
	"github.com/hammerhouse/auction-backend/internal/config"
	"github.com/hammerhouse/auction-backend/internal/transport/middleware"
	"github.com/hammerhouse/auction-backend/internal/transport/rest"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", app.BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	core, err := app.NewCore(ctx, cfg, logger)
	if err != nil {
		logger.Error("initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer core.Close()

	mux := http.NewServeMux()
	rest.NewHealthHandler(core.Pool, app.BuildVersion()).Register(mux)

	chain := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.Logger(logger),
	)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      chain(mux),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listener started", slog.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.Error("http listener failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", slog.String("error", err.Error()))
	}
}
