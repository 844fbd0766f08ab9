package main

import (
	"github.com/hibiken/asynq"

	courseJob "github.com/Kingsley6145/gamebridge-admin/internal/domains/course/job"
	mediaJob "github.com/Kingsley6145/gamebridge-admin/internal/domains/media/job"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared"
	"github.com/Kingsley6145/gamebridge-admin/pkg/container"
)

// HandlerRegistry holds all job handlers.
type HandlerRegistry struct {
	processCover   *courseJob.ProcessCoverHandler
	cleanupOrphans *mediaJob.CleanupOrphansHandler
}

func initializeHandlers(c *container.Container) *HandlerRegistry {
	return &HandlerRegistry{
		processCover:   courseJob.NewProcessCoverHandler(c.MediaService),
		cleanupOrphans: mediaJob.NewCleanupOrphansHandler(c.MediaService, c.CourseStore),
	}
}

// RegisterHandlers binds every handler to its task type.
func (h *HandlerRegistry) RegisterHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeProcessCover, h.processCover.ProcessTask)
	mux.HandleFunc(shared.TypeCleanupOrphans, h.cleanupOrphans.ProcessTask)
}
