package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/service"
	"github.com/Kingsley6145/gamebridge-admin/internal/infrastructure/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeSync is an in-memory CourseSync for handler tests.
type fakeSync struct {
	courses   []model.Course
	loading   bool
	err       error
	uploadErr error // returned when a mutation carries an image
	lastActor string
	lastImage *service.ImageFile
	nextID    int
}

func (f *fakeSync) Start(ctx context.Context) error { return nil }
func (f *fakeSync) Stop()                           {}
func (f *fakeSync) Courses() []model.Course         { return f.courses }
func (f *fakeSync) Loading() bool                   { return f.loading }
func (f *fakeSync) Err() error                      { return f.err }

func (f *fakeSync) GetByID(ctx context.Context, id string) (*model.Course, error) {
	for _, c := range f.courses {
		if c.ID == id {
			found := c.Clone()
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeSync) Create(ctx context.Context, actor string, data model.CourseData, image *service.ImageFile) (model.Course, error) {
	if image != nil && data.CoverImage == "" {
		data.CoverImage = image.Name
	}
	if err := data.Validate(); err != nil {
		return model.Course{}, err
	}
	if image != nil && f.uploadErr != nil {
		return model.Course{}, f.uploadErr
	}
	f.lastActor = actor
	f.lastImage = image
	f.nextID++
	course := data.ToCourse()
	course.ID = string(rune('a' + f.nextID - 1))
	f.courses = append(f.courses, course)
	return course, nil
}

func (f *fakeSync) Update(ctx context.Context, actor, id string, data model.CourseData, image *service.ImageFile) (model.Course, error) {
	if err := data.Validate(); err != nil {
		return model.Course{}, err
	}
	if image != nil && f.uploadErr != nil {
		return model.Course{}, f.uploadErr
	}
	f.lastActor = actor
	f.lastImage = image
	for i, c := range f.courses {
		if c.ID == id {
			course := data.ToCourse()
			course.ID = id
			f.courses[i] = course
			return course, nil
		}
	}
	return model.Course{}, model.ErrCourseNotFound
}

func (f *fakeSync) Delete(ctx context.Context, id string) error {
	kept := f.courses[:0]
	for _, c := range f.courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	f.courses = kept
	return nil
}

func (f *fakeSync) Duplicate(ctx context.Context, id string) (model.Course, error) {
	source, _ := f.GetByID(ctx, id)
	if source == nil {
		return model.Course{}, model.ErrCourseNotFound
	}
	dup := source.Clone()
	dup.Title += " (Copy)"
	f.nextID++
	dup.ID = string(rune('a' + f.nextID - 1))
	f.courses = append(f.courses, dup)
	return dup, nil
}

type fakeVideoUploader struct {
	url   string
	calls int
}

func (f *fakeVideoUploader) UploadVideo(ctx context.Context, actor, filename, contentType string, size int64, r io.Reader, onProgress storage.ProgressFunc) (string, error) {
	f.calls++
	_, _ = io.Copy(io.Discard, r)
	return f.url, nil
}

func testRouter(sync *fakeSync, videos VideoUploader) *gin.Engine {
	router := gin.New()
	// Stands in for the auth middleware.
	router.Use(func(c *gin.Context) { c.Set("userID", "admin") })

	h := NewHandler(sync)
	n := NewNestedHandler(sync, videos)

	router.GET("/courses", h.ListCourses)
	router.POST("/courses", h.CreateCourse)
	router.GET("/courses/:id", h.GetCourse)
	router.PUT("/courses/:id", h.UpdateCourse)
	router.DELETE("/courses/:id", h.DeleteCourse)
	router.POST("/courses/:id/duplicate", h.DuplicateCourse)

	router.POST("/courses/:id/modules", n.AddModule)
	router.PUT("/courses/:id/modules/:moduleId", n.UpdateModule)
	router.DELETE("/courses/:id/modules/:moduleId", n.DeleteModule)
	router.POST("/courses/:id/questions", n.AddQuestion)
	router.PUT("/courses/:id/questions/:questionId", n.UpdateQuestion)
	router.DELETE("/courses/:id/questions/:questionId", n.DeleteQuestion)

	return router
}

func seedCourse() model.Course {
	return model.Course{
		ID:         "c1",
		Title:      "Game Design Fundamentals",
		Duration:   "2h 46min",
		Rating:     4.5,
		Students:   1200,
		CoverImage: "https://cdn.example.com/cover.png",
		Modules: []model.Module{
			{ID: "m1", Title: "First Module", Duration: "4:28 mins", IconColor: "#FF6B35",
				VideoURL: "https://cdn.example.com/one.mp4", MarkdownDescription: strings.Repeat("one ", 15)},
		},
		Questions: []model.Question{
			{ID: "q1", Question: "What makes a good tutorial level?",
				Options: []string{"Pacing", "Clarity", "Safety", "All of the above"}, CorrectAnswerIndex: 3},
		},
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success, w.Body.String())
	return envelope.Data
}

func TestListCourses(t *testing.T) {
	sync := &fakeSync{courses: []model.Course{seedCourse()}, loading: false}
	router := testRouter(sync, nil)

	w := doJSON(t, router, http.MethodGet, "/courses", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeData(t, w)
	assert.Equal(t, false, data["loading"])
	assert.Len(t, data["courses"], 1)
}

func TestGetCourseNotFound(t *testing.T) {
	router := testRouter(&fakeSync{}, nil)

	w := doJSON(t, router, http.MethodGet, "/courses/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCourseJSON(t *testing.T) {
	sync := &fakeSync{}
	router := testRouter(sync, nil)

	payload := model.CourseData{
		Title:      "New Course",
		Duration:   "1h 30min",
		Rating:     4,
		CoverImage: "https://cdn.example.com/new.png",
	}

	w := doJSON(t, router, http.MethodPost, "/courses", payload)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "admin", sync.lastActor)
	assert.Len(t, sync.courses, 1)
}

func TestCreateCourseValidationError(t *testing.T) {
	router := testRouter(&fakeSync{}, nil)

	payload := model.CourseData{Title: "X", Duration: "bad", CoverImage: ""}
	w := doJSON(t, router, http.MethodPost, "/courses", payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCourseMultipartWithCover(t *testing.T) {
	sync := &fakeSync{}
	router := testRouter(sync, nil)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	coursePart, err := json.Marshal(model.CourseData{
		Title:    "Multipart Course",
		Duration: "1h 5min",
	})
	require.NoError(t, err)
	require.NoError(t, form.WriteField("course", string(coursePart)))

	filePart, err := form.CreateFormFile("cover", "cover.png")
	require.NoError(t, err)
	_, err = filePart.Write([]byte("png bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/courses", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, sync.lastImage)
	assert.Equal(t, "cover.png", sync.lastImage.Name)
	assert.Equal(t, []byte("png bytes"), sync.lastImage.Data)
}

func TestCreateCourseRejectedCoverAnswers400(t *testing.T) {
	sync := &fakeSync{uploadErr: fmt.Errorf("%w: image size must be less than 5MB", model.ErrInvalidUpload)}
	router := testRouter(sync, nil)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	coursePart, err := json.Marshal(model.CourseData{
		Title:    "Oversized Cover",
		Duration: "1h 5min",
	})
	require.NoError(t, err)
	require.NoError(t, form.WriteField("course", string(coursePart)))

	filePart, err := form.CreateFormFile("cover", "huge.png")
	require.NoError(t, err)
	_, err = filePart.Write(bytes.Repeat([]byte("x"), 64))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/courses", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "less than 5MB")
	assert.Empty(t, sync.courses)
}

func TestUpdateCourseNotFound(t *testing.T) {
	router := testRouter(&fakeSync{}, nil)

	payload := model.CourseData{
		Title:      "Updated",
		Duration:   "1h 0min",
		CoverImage: "https://cdn.example.com/x.png",
	}
	w := doJSON(t, router, http.MethodPut, "/courses/missing", payload)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCourse(t *testing.T) {
	sync := &fakeSync{courses: []model.Course{seedCourse()}}
	router := testRouter(sync, nil)

	w := doJSON(t, router, http.MethodDelete, "/courses/c1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, sync.courses)
}

func TestDuplicateCourse(t *testing.T) {
	sync := &fakeSync{courses: []model.Course{seedCourse()}}
	router := testRouter(sync, nil)

	w := doJSON(t, router, http.MethodPost, "/courses/c1/duplicate", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, sync.courses, 2)
	assert.Equal(t, "Game Design Fundamentals (Copy)", sync.courses[1].Title)
}

func TestAddQuestionPersistsFullDocument(t *testing.T) {
	sync := &fakeSync{courses: []model.Course{seedCourse()}}
	router := testRouter(sync, nil)

	q := model.Question{
		Question:           "Which engine popularized visual scripting?",
		Options:            []string{"Unity", "Unreal", "Godot", "GameMaker"},
		CorrectAnswerIndex: 1,
	}

	w := doJSON(t, router, http.MethodPost, "/courses/c1/questions", q)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, sync.courses[0].Questions, 2)
}

func TestUpdateQuestionAbsentIDAnswers404(t *testing.T) {
	sync := &fakeSync{courses: []model.Course{seedCourse()}}
	router := testRouter(sync, nil)

	q := model.Question{
		Question:           "What makes a good tutorial level?",
		Options:            []string{"Pacing", "Clarity", "Safety", "All of the above"},
		CorrectAnswerIndex: 0,
	}

	w := doJSON(t, router, http.MethodPut, "/courses/c1/questions/missing", q)
	assert.Equal(t, http.StatusNotFound, w.Code)
	// Nothing persisted.
	assert.Equal(t, 3, sync.courses[0].Questions[0].CorrectAnswerIndex)
}

func TestDeleteModuleAbsentIDStillSucceeds(t *testing.T) {
	sync := &fakeSync{courses: []model.Course{seedCourse()}}
	router := testRouter(sync, nil)

	w := doJSON(t, router, http.MethodDelete, "/courses/c1/modules/missing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, sync.courses[0].Modules, 1)
}

func TestAddModuleWithVideoFile(t *testing.T) {
	sync := &fakeSync{courses: []model.Course{seedCourse()}}
	videos := &fakeVideoUploader{url: "https://minio.local/bucket/videos/1_clip.mp4"}
	router := testRouter(sync, videos)

	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	modulePart, err := json.Marshal(model.Module{
		Title:               "Second Module",
		Duration:            "3:10 mins",
		IconColor:           "#4A90E2",
		MarkdownDescription: strings.Repeat("second module content ", 4),
	})
	require.NoError(t, err)
	require.NoError(t, form.WriteField("module", string(modulePart)))

	filePart, err := form.CreateFormFile("video", "clip.mp4")
	require.NoError(t, err)
	_, err = filePart.Write([]byte("mp4 bytes"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/courses/c1/modules", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 1, videos.calls)

	require.Len(t, sync.courses[0].Modules, 2)
	assert.Equal(t, videos.url, sync.courses[0].Modules[1].VideoURL)
}

func TestUpdateModulePreservesStoredVideoURL(t *testing.T) {
	sync := &fakeSync{courses: []model.Course{seedCourse()}}
	router := testRouter(sync, &fakeVideoUploader{})

	// JSON edit carrying a bare filename must not clobber the stored URL.
	edit := model.Module{
		Title:               "First Module Revised",
		Duration:            "5:00 mins",
		IconColor:           "#FF6B35",
		VideoURL:            "one.mp4",
		MarkdownDescription: strings.Repeat("revised module content ", 4),
	}

	w := doJSON(t, router, http.MethodPut, "/courses/c1/modules/m1", edit)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://cdn.example.com/one.mp4", sync.courses[0].Modules[0].VideoURL)
	assert.Equal(t, "First Module Revised", sync.courses[0].Modules[0].Title)
}
