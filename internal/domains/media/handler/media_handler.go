package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/media"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared/response"
)

// MediaHandler exposes the object-store gateway directly, for clients
// that upload files ahead of the document write.
type MediaHandler struct {
	service *media.Service
}

func NewMediaHandler(service *media.Service) *MediaHandler {
	return &MediaHandler{service: service}
}

// UploadImage - POST /v1/uploads/image
func (h *MediaHandler) UploadImage(c *gin.Context) {
	name, contentType, data, ok := readUpload(c, "file")
	if !ok {
		return
	}

	url, err := h.service.UploadImage(c.Request.Context(), c.GetString("userID"), name, contentType, data)
	if media.HandleMediaError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}

// UploadVideo - POST /v1/uploads/video
// Streams straight from the multipart part; progress lands in the log.
func (h *MediaHandler) UploadVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file part")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "unreadable file")
		return
	}
	defer file.Close()

	requestID := c.GetString("request_id")
	url, err := h.service.UploadVideo(
		c.Request.Context(),
		c.GetString("userID"),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
		func(percent float64) {
			log.Debug().
				Str("request_id", requestID).
				Float64("percent", percent).
				Msg("video upload progress")
		},
	)
	if media.HandleMediaError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}

// UploadHTML - POST /v1/uploads/html
func (h *MediaHandler) UploadHTML(c *gin.Context) {
	name, contentType, data, ok := readUpload(c, "file")
	if !ok {
		return
	}

	url, err := h.service.UploadHTML(c.Request.Context(), c.GetString("userID"), name, contentType, data)
	if media.HandleMediaError(c, err) {
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"url": url})
}

// ResolveImage - GET /v1/uploads/resolve?path=...
// Resolution is advisory: an unknown path answers 200 with an empty
// url, never an error.
func (h *MediaHandler) ResolveImage(c *gin.Context) {
	url := h.service.ResolveImageURL(c.Request.Context(), c.Query("path"))
	response.Success(c, http.StatusOK, gin.H{"url": url})
}

// DeleteFile - POST /v1/uploads/delete
// Best effort: foreign URLs and storage failures both answer success.
func (h *MediaHandler) DeleteFile(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid delete payload")
		return
	}

	h.service.DeleteFile(c.Request.Context(), req.URL)
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// readUpload pulls a small file fully into memory. Videos stream; this
// is for images and HTML whose validators need the whole payload.
func readUpload(c *gin.Context, field string) (name, contentType string, data []byte, ok bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		response.BadRequest(c, "missing file part")
		return "", "", nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "unreadable file")
		return "", "", nil, false
	}
	defer file.Close()

	data, err = io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "unreadable file")
		return "", "", nil, false
	}

	return fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data, true
}
