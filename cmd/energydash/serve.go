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

	"github.com/dukerupert/energydash/internal/database"
	"github.com/dukerupert/energydash/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(a)
		},
	}

	flags := cmd.Flags()
	flags.String("port", "", "HTTP listen port")
	flags.Int("rate-limit", 0, "page views per client per minute (0 uses config)")
	a.v.BindPFlag("port", flags.Lookup("port"))
	a.v.BindPFlag("rate_limit_per_minute", flags.Lookup("rate-limit"))
	return cmd
}

func runServe(a *app) error {
	cfg, logger := a.cfg, a.logger

	if err := os.MkdirAll(cfg.StaticDir, 0o755); err != nil {
		return fmt.Errorf("create static dir: %w", err)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	srv := server.New(db, server.Config{
		StaticDir:          cfg.StaticDir,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go srv.RateLimiter().RunCleanup(ctx, 5*time.Minute)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("energydash running", "addr", "http://localhost:"+cfg.Port, "static_dir", cfg.StaticDir, "db", cfg.DBPath)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
