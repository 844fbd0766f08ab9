package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/service"
	"github.com/Kingsley6145/gamebridge-admin/internal/infrastructure/storage"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared/response"
)

// VideoUploader is the slice of the media gateway the nested module
// endpoints need.
type VideoUploader interface {
	UploadVideo(ctx context.Context, actor, filename, contentType string, size int64, r io.Reader, onProgress storage.ProgressFunc) (string, error)
}

// NestedHandler mutates the modules/questions arrays embedded in a
// course. There is no independent persistence for either: every
// operation is load course, run the draft editor, write the full
// document back.
type NestedHandler struct {
	sync   service.CourseSync
	videos VideoUploader
}

func NewNestedHandler(sync service.CourseSync, videos VideoUploader) *NestedHandler {
	return &NestedHandler{sync: sync, videos: videos}
}

// AddModule - POST /v1/courses/:id/modules
// Multipart: "module" JSON part plus optional "video" file. The video
// uploads first; the module is committed with the resulting URL.
func (h *NestedHandler) AddModule(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	module, video, ok := h.bindModulePayload(c)
	if !ok {
		return
	}

	// Reject invalid fields before the video touches the network.
	if err := model.ValidateModule(module, video != nil); model.HandleCourseError(c, err) {
		return
	}

	if video != nil {
		url, err := h.uploadVideo(c, video)
		if model.HandleCourseError(c, err) {
			return
		}
		module.VideoURL = url
	}

	draft, err := service.AddModule(*course, module, false)
	if model.HandleCourseError(c, err) {
		return
	}

	h.persist(c, draft, http.StatusCreated)
}

// UpdateModule - PUT /v1/courses/:id/modules/:moduleId
func (h *NestedHandler) UpdateModule(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	module, video, ok := h.bindModulePayload(c)
	if !ok {
		return
	}
	module.ID = c.Param("moduleId")

	if video == nil {
		// No new file: the stored URL survives unless the edit already
		// carries a real one.
		var previous string
		for _, m := range course.Modules {
			if m.ID == module.ID {
				previous = m.VideoURL
				break
			}
		}
		module.VideoURL = service.PreserveVideoURL(module.VideoURL, previous)
	}

	if err := model.ValidateModule(module, video != nil); model.HandleCourseError(c, err) {
		return
	}

	if video != nil {
		url, err := h.uploadVideo(c, video)
		if model.HandleCourseError(c, err) {
			return
		}
		module.VideoURL = url
	}

	draft, found, err := service.EditModule(*course, module, false)
	if model.HandleCourseError(c, err) {
		return
	}
	if !found {
		model.HandleCourseError(c, model.ErrModuleNotFound)
		return
	}

	h.persist(c, draft, http.StatusOK)
}

// DeleteModule - DELETE /v1/courses/:id/modules/:moduleId
// Removing an absent module still persists; the draft op is a no-op.
func (h *NestedHandler) DeleteModule(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	draft := service.DeleteModule(*course, c.Param("moduleId"))
	h.persist(c, draft, http.StatusOK)
}

// AddQuestion - POST /v1/courses/:id/questions
func (h *NestedHandler) AddQuestion(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	var question model.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		response.BadRequest(c, "invalid question payload")
		return
	}

	draft, err := service.AddQuestion(*course, question)
	if model.HandleCourseError(c, err) {
		return
	}

	h.persist(c, draft, http.StatusCreated)
}

// UpdateQuestion - PUT /v1/courses/:id/questions/:questionId
func (h *NestedHandler) UpdateQuestion(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	var question model.Question
	if err := c.ShouldBindJSON(&question); err != nil {
		response.BadRequest(c, "invalid question payload")
		return
	}
	question.ID = c.Param("questionId")

	draft, found, err := service.EditQuestion(*course, question)
	if model.HandleCourseError(c, err) {
		return
	}
	if !found {
		model.HandleCourseError(c, model.ErrQuestionNotFound)
		return
	}

	h.persist(c, draft, http.StatusOK)
}

// DeleteQuestion - DELETE /v1/courses/:id/questions/:questionId
func (h *NestedHandler) DeleteQuestion(c *gin.Context) {
	course, ok := h.loadCourse(c)
	if !ok {
		return
	}

	draft := service.DeleteQuestion(*course, c.Param("questionId"))
	h.persist(c, draft, http.StatusOK)
}

func (h *NestedHandler) loadCourse(c *gin.Context) (*model.Course, bool) {
	course, err := h.sync.GetByID(c.Request.Context(), c.Param("id"))
	if model.HandleCourseError(c, err) {
		return nil, false
	}
	if course == nil {
		response.NotFound(c, "The specified course does not exist")
		return nil, false
	}
	return course, true
}

// persist writes the whole reconstructed document back through the
// synchronizer and returns it.
func (h *NestedHandler) persist(c *gin.Context, draft model.Course, status int) {
	updated, err := h.sync.Update(c.Request.Context(), c.GetString("userID"), draft.ID, draft.Data(), nil)
	if model.HandleCourseError(c, err) {
		return
	}

	response.Success(c, status, updated)
}

type videoFile struct {
	name        string
	contentType string
	size        int64
	reader      io.Reader
	close       func() error
}

func (h *NestedHandler) bindModulePayload(c *gin.Context) (model.Module, *videoFile, bool) {
	var module model.Module

	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		if err := c.ShouldBindJSON(&module); err != nil {
			response.BadRequest(c, "invalid module payload")
			return module, nil, false
		}
		return module, nil, true
	}

	raw := c.PostForm("module")
	if raw == "" {
		response.BadRequest(c, "missing module part")
		return module, nil, false
	}
	if err := json.Unmarshal([]byte(raw), &module); err != nil {
		response.BadRequest(c, "invalid module payload")
		return module, nil, false
	}

	fileHeader, err := c.FormFile("video")
	if err != nil {
		return module, nil, true
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "unreadable video file")
		return module, nil, false
	}

	return module, &videoFile{
		name:        fileHeader.Filename,
		contentType: fileHeader.Header.Get("Content-Type"),
		size:        fileHeader.Size,
		reader:      file,
		close:       file.Close,
	}, true
}

func (h *NestedHandler) uploadVideo(c *gin.Context, video *videoFile) (string, error) {
	defer video.close()

	requestID := c.GetString("request_id")
	lastLogged := -10.0

	return h.videos.UploadVideo(
		c.Request.Context(),
		c.GetString("userID"),
		video.name,
		video.contentType,
		video.size,
		video.reader,
		func(percent float64) {
			// Chunk callbacks are chatty; log every ten points.
			if percent-lastLogged >= 10 || percent >= 100 {
				lastLogged = percent
				log.Debug().
					Str("request_id", requestID).
					Float64("percent", percent).
					Msg("video upload progress")
			}
		},
	)
}
