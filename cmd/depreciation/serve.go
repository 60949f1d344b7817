package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/depreciation-engine/api"
	"github.com/warp/depreciation-engine/internal/logger"
	"github.com/warp/depreciation-engine/store/sqlite"
)

// --- Serve Command ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API. Generated runs are cached in SQLite (":memory:" by
default) so their CSV can be downloaded, and pruned after runs.retention.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Server.Port = port
		}
		if dsn, _ := cmd.Flags().GetString("db"); dsn != "" {
			cfg.Store.DSN = dsn
		}
		return runServer()
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP server port (overrides server.port)")
	serveCmd.Flags().String("db", "", `SQLite database path (overrides store.dsn, ":memory:" for in-memory)`)
}

func runServer() error {
	log := logger.Get()

	// Initialize store
	store, err := sqlite.New(cfg.Store.DSN)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer store.Close()

	// Initialize handler
	handler := api.NewHandler(store, log)
	handler.ListLimit = cfg.Runs.ListLimit

	// Start pruning expired runs
	pruner := api.NewRunPruner(store, cfg.Runs.Retention, cfg.Runs.PruneCron, log)
	if err := pruner.Start(); err != nil {
		return err
	}
	defer pruner.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      api.NewRouter(handler, cfg.Server.CORSOrigins),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", server.Addr).Infof("Server starting on http://localhost:%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
