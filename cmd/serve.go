package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/icicle-admin/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an in-memory backend for local development",
	Long: `serve starts a backend holding time entries in memory only. It accepts
the logins admin/admin and user/user. Everything is lost on exit.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Serve.Addr
	}
	if !flagVerbose {
		gin.SetMode(gin.ReleaseMode)
	}

	h := server.NewHandler([]byte(cfg.Serve.JWTSecret), server.DefaultAccounts)
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.NewRouter(h, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(cmd.Context(), "listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt signal
	select {
	case err := <-errCh:
		if err != nil {
			fail(1, fmt.Errorf("server error: %w", err))
		}
		return nil
	case <-cmd.Context().Done():
	}

	logger.Info(context.Background(), "shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
