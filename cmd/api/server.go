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

	"github.com/Kingsley6145/gamebridge-admin/pkg/container"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

// Serve builds the dependency graph, starts the course synchronizer
// and runs the HTTP server until a shutdown signal arrives.
func Serve() {
	app, err := container.NewContainer()
	if err != nil {
		logger.Error("failed to initialize container", err)
		os.Exit(1)
	}
	defer app.Close()

	// The synchronizer must be live before the first request: list
	// reads serve its local state, never the store directly.
	startCtx, startCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := app.Synchronizer.Start(startCtx); err != nil {
		startCancel()
		logger.Error("failed to start course synchronizer", err)
		os.Exit(1)
	}
	startCancel()

	router := SetupRouter(app)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%s", app.Config.App.Port),
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("server starting", map[string]interface{}{
			"port":        app.Config.App.Port,
			"environment": app.Config.App.Environment,
		})

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server forced to shutdown", err)
	}

	logger.Info("server exited", nil)
}
