package main

import (
	"context"
	"os"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/Kingsley6145/gamebridge-admin/pkg/container"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(c *container.Container, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     c.Config.Redis.Host,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 10,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().
					Err(err).
					Str("type", task.Type()).
					Msg("task failed")
			}),
		},
	)

	go func() {
		logger.Info("worker starting", nil)
		if err := srv.Run(mux); err != nil {
			logger.Error("worker failed", err)
			os.Exit(1)
		}
	}()

	return &asynqServer{Server: srv}
}

func (s *asynqServer) Shutdown() {
	logger.Info("stopping worker server", nil)
	s.Server.Shutdown()
}
