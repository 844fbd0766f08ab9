package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
	"github.com/Kingsley6145/gamebridge-admin/internal/domains/media"
)

// CourseLister is the read surface the orphan scan needs from the
// course store.
type CourseLister interface {
	GetAll(ctx context.Context) ([]model.Course, error)
}

// CleanupOrphansHandler removes stored files that no course references
// anymore. Scheduled, not enqueued per request.
type CleanupOrphansHandler struct {
	media   *media.Service
	courses CourseLister
	minAge  time.Duration
}

func NewCleanupOrphansHandler(mediaService *media.Service, courses CourseLister) *CleanupOrphansHandler {
	return &CleanupOrphansHandler{
		media:   mediaService,
		courses: courses,
		// Uploads race document writes; anything this fresh may still
		// be waiting for its course to be saved.
		minAge: 24 * time.Hour,
	}
}

func (h *CleanupOrphansHandler) ProcessTask(ctx context.Context, _ *asynq.Task) error {
	courses, err := h.courses.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load courses for orphan scan")
		return fmt.Errorf("load courses: %w", err)
	}

	inUse := map[string]bool{}
	for _, course := range courses {
		if course.CoverImage != "" {
			inUse[course.CoverImage] = true
		}
		for _, m := range course.Modules {
			if m.VideoURL != "" {
				inUse[m.VideoURL] = true
			}
			if m.HTMLContent != "" {
				inUse[m.HTMLContent] = true
			}
		}
	}

	removed, err := h.media.CleanupOrphans(ctx, inUse, h.minAge)
	if err != nil {
		log.Error().Err(err).Msg("Orphan cleanup failed")
		return fmt.Errorf("cleanup orphans: %w", err)
	}

	log.Info().
		Int("removed", removed).
		Int("referenced", len(inUse)).
		Msg("Orphan cleanup finished")

	return nil
}
