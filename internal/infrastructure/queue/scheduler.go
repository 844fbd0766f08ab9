package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"github.com/Kingsley6145/gamebridge-admin/internal/shared"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redis asynq.RedisClientOpt) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(redis, &asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		}),
	}
}

// RegisterMaintenanceJobs wires every recurring task. Orphan cleanup
// runs nightly, outside admin working hours.
func (s *Scheduler) RegisterMaintenanceJobs() error {
	task := asynq.NewTask(shared.TypeCleanupOrphans, nil)

	_, err := s.scheduler.Register(
		"0 3 * * *", // daily at 3 AM UTC
		task,
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("failed to register orphan cleanup job", err)
		return err
	}

	logger.Info("registered orphan cleanup: daily at 3 AM", nil)
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
