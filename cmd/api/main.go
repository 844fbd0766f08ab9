package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

func main() {
	// .env is for local development; production uses real environment
	// variables.
	envLoaded := godotenv.Load() == nil

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	if !envLoaded {
		logger.Debug("no .env file found, using system environment")
	}
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}
