package main

import (
	"os"

	"github.com/hibiken/asynq"

	"github.com/Kingsley6145/gamebridge-admin/internal/infrastructure/queue"
	"github.com/Kingsley6145/gamebridge-admin/pkg/container"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

type asynqScheduler struct {
	*queue.Scheduler
}

func setupScheduler(c *container.Container) *asynqScheduler {
	scheduler := queue.NewScheduler(asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	})

	if err := scheduler.RegisterMaintenanceJobs(); err != nil {
		logger.Error("failed to register scheduled jobs", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("scheduler starting", nil)
		if err := scheduler.Start(); err != nil {
			logger.Error("scheduler failed", err)
			os.Exit(1)
		}
	}()

	return &asynqScheduler{Scheduler: scheduler}
}

func (s *asynqScheduler) Shutdown() {
	s.Scheduler.Shutdown()
}
