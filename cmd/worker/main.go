package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Kingsley6145/gamebridge-admin/pkg/container"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	c, err := container.NewContainer()
	if err != nil {
		logger.Error("failed to initialize container", err)
		os.Exit(1)
	}
	defer c.Close()

	handlers := initializeHandlers(c)
	srv := setupAsynqServer(c, handlers)
	scheduler := setupScheduler(c)

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *asynqServer, scheduler *asynqScheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down worker", nil)
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("worker stopped", nil)
}
