package model

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Kingsley6145/gamebridge-admin/internal/shared/response"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrModuleNotFound   = errors.New("module not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAuthRequired     = errors.New("authentication required")
	ErrPermissionDenied = errors.New("permission denied by storage rules")

	// ErrInvalidUpload wraps a file rejected before or during a cover
	// upload. The wrapped message names the violated limit and is shown
	// to the user as-is.
	ErrInvalidUpload = errors.New("invalid upload")
)

var courseErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrCourseNotFound: {
		Status:  http.StatusNotFound,
		Code:    "COURSE_NOT_FOUND",
		Message: "The specified course does not exist",
	},
	ErrModuleNotFound: {
		Status:  http.StatusNotFound,
		Code:    "MODULE_NOT_FOUND",
		Message: "The specified module does not exist in this course",
	},
	ErrQuestionNotFound: {
		Status:  http.StatusNotFound,
		Code:    "QUESTION_NOT_FOUND",
		Message: "The specified question does not exist in this course",
	},
	ErrAuthRequired: {
		Status:  http.StatusUnauthorized,
		Code:    "AUTH_REQUIRED",
		Message: "You must be logged in to do this. Please sign in and try again",
	},
	ErrPermissionDenied: {
		Status:  http.StatusForbidden,
		Code:    "PERMISSION_DENIED",
		Message: "Permission denied. Check that you are logged in and that the storage rules allow this operation",
	},
}

// HandleCourseError translates a service error into an HTTP response.
// Returns false when err is nil so handlers can use it as a guard.
func HandleCourseError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED",
			"One or more fields are invalid", vErrs)
		return true
	}

	// File rejections keep their concrete message so the user learns
	// which limit was violated.
	if errors.Is(err, ErrInvalidUpload) {
		response.ErrorResponse(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
		return true
	}

	for sentinel, cfg := range courseErrorMap {
		if errors.Is(err, sentinel) {
			response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
			return true
		}
	}

	// Anything else is a transport/store failure; surface a generic toast.
	logger.Error("course operation failed", err)
	response.InternalServerError(c, "Operation failed, please try again")
	return true
}
