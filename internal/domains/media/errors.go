package media

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Kingsley6145/gamebridge-admin/internal/infrastructure/storage"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared/response"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

var (
	// ErrAuthRequired is returned before any network attempt when an
	// upload is tried without an authenticated actor.
	ErrAuthRequired = errors.New("you must be logged in to upload files")

	ErrInvalidFile = errors.New("invalid file")
)

// HandleMediaError translates an upload error into an HTTP response.
func HandleMediaError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrAuthRequired):
		response.Unauthorized(c, "You must be logged in to upload files. Please sign in and try again")
	case errors.Is(err, ErrInvalidFile):
		response.BadRequest(c, err.Error())
	case errors.Is(err, storage.ErrAccessDenied):
		response.Forbidden(c, "Permission denied. Check that you are logged in and that the storage rules allow this operation")
	default:
		logger.Error("upload failed", err)
		response.InternalServerError(c, "Upload failed, please try again")
	}
	return true
}
