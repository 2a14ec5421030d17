package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/routes"
	"github.com/museum-catalog/museum-backend/src/seed"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	c, err := initContext()
	if err != nil {
		return err
	}
	defer c.Close()

	svc, err := c.Services()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := seed.Curator(ctx, svc.Users, c.Config.CuratorUsername, c.Config.CuratorPassword, c.Log); err != nil {
		return err
	}

	router := routes.NewRouter(svc, routes.Options{
		SecretKey:   c.Config.JWTSecret,
		MediaURL:    c.Config.MediaURL,
		CORSOrigins: c.Config.CORSOrigins,
	}, c.Log)

	server := &http.Server{
		Addr:              c.Config.ServerHost,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Log.Info("server is running", zap.String("addr", c.Config.ServerHost))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
