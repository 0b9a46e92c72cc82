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

	"github.com/spf13/cobra"

	"github.com/ewilliams-labs/cadence/backend/internal/adapters/moodify"
	"github.com/ewilliams-labs/cadence/backend/internal/adapters/rest"
	"github.com/ewilliams-labs/cadence/backend/internal/core/services"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	port := a.cfg.Port
	if servePort != 0 {
		port = servePort
	}

	mood := moodify.NewClient(a.cfg.MoodifyURL, nil)
	if mood.URL() == "" {
		a.logger.Warn("MOODIFY_URL not set, /moodify will fail")
	}

	handler := rest.NewHandler(
		services.NewWorkoutService(a.repo),
		a.generator,
		mood,
		rest.Options{Production: a.cfg.IsProduction(), Logger: a.logger},
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()
	a.logger.Info("Cadence API is running", "addr", srv.Addr, "env", a.cfg.Environment, "storage", a.cfg.StorageDriver)

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		a.logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}
