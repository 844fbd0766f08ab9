package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/service"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared/response"
)

// Handler exposes the course collection over HTTP. It is a thin layer:
// all list ownership and persistence lives in the synchronizer.
type Handler struct {
	sync service.CourseSync
}

func NewHandler(sync service.CourseSync) *Handler {
	return &Handler{sync: sync}
}

// ListCourses - GET /v1/courses
// Serves the synchronizer's local list: in realtime mode it tracks the
// store push-for-push, in request/response mode it reflects the last
// load plus local mutations.
func (h *Handler) ListCourses(c *gin.Context) {
	if err := h.sync.Err(); err != nil {
		response.InternalServerError(c, "Failed to load courses")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"courses": h.sync.Courses(),
		"loading": h.sync.Loading(),
	})
}

// GetCourse - GET /v1/courses/:id
func (h *Handler) GetCourse(c *gin.Context) {
	course, err := h.sync.GetByID(c.Request.Context(), c.Param("id"))
	if model.HandleCourseError(c, err) {
		return
	}
	if course == nil {
		response.NotFound(c, "The specified course does not exist")
		return
	}

	response.Success(c, http.StatusOK, course)
}

// CreateCourse - POST /v1/courses
// Accepts JSON, or multipart with a "course" JSON part plus an
// optional "cover" image file that is uploaded before persisting.
func (h *Handler) CreateCourse(c *gin.Context) {
	data, image, ok := h.bindCoursePayload(c)
	if !ok {
		return
	}

	course, err := h.sync.Create(c.Request.Context(), c.GetString("userID"), data, image)
	if model.HandleCourseError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, course)
}

// UpdateCourse - PUT /v1/courses/:id
// Full-document replace: the payload is the whole reconstructed course.
func (h *Handler) UpdateCourse(c *gin.Context) {
	data, image, ok := h.bindCoursePayload(c)
	if !ok {
		return
	}

	course, err := h.sync.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), data, image)
	if model.HandleCourseError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, course)
}

// DeleteCourse - DELETE /v1/courses/:id
func (h *Handler) DeleteCourse(c *gin.Context) {
	if err := h.sync.Delete(c.Request.Context(), c.Param("id")); model.HandleCourseError(c, err) {
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// DuplicateCourse - POST /v1/courses/:id/duplicate
func (h *Handler) DuplicateCourse(c *gin.Context) {
	course, err := h.sync.Duplicate(c.Request.Context(), c.Param("id"))
	if model.HandleCourseError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, course)
}

// bindCoursePayload reads the write payload from either a JSON body or
// a multipart form. Reports its own HTTP errors; ok is false when the
// request was already answered.
func (h *Handler) bindCoursePayload(c *gin.Context) (model.CourseData, *service.ImageFile, bool) {
	var data model.CourseData

	contentType := c.GetHeader("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		if err := c.ShouldBindJSON(&data); err != nil {
			response.BadRequest(c, "invalid course payload")
			return data, nil, false
		}
		return data, nil, true
	}

	raw := c.PostForm("course")
	if raw == "" {
		response.BadRequest(c, "missing course part")
		return data, nil, false
	}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		response.BadRequest(c, "invalid course payload")
		return data, nil, false
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		// No cover attached; the payload's coverImage stands.
		return data, nil, true
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "unreadable cover file")
		return data, nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "unreadable cover file")
		return data, nil, false
	}

	image := &service.ImageFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        content,
	}
	return data, image, true
}
