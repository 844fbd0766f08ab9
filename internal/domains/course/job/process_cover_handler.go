package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/media"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared"
)

// ProcessCoverHandler builds resized variants of a course cover after
// the upload has already succeeded.
type ProcessCoverHandler struct {
	media *media.Service
}

func NewProcessCoverHandler(media *media.Service) *ProcessCoverHandler {
	return &ProcessCoverHandler{media: media}
}

func (h *ProcessCoverHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ProcessCoverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal ProcessCover payload")
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	log.Info().
		Str("course_id", payload.CourseID).
		Msg("Processing course cover variants")

	if err := h.media.ProcessCoverVariants(ctx, payload.CoverURL); err != nil {
		log.Error().
			Err(err).
			Str("course_id", payload.CourseID).
			Msg("Failed to process cover")
		return fmt.Errorf("process cover: %w", err)
	}

	log.Info().
		Str("course_id", payload.CourseID).
		Msg("Course cover processed successfully")

	return nil
}
