package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/hibiken/asynq"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/repository"
	"github.com/Kingsley6145/gamebridge-admin/internal/domains/media"
	"github.com/Kingsley6145/gamebridge-admin/internal/infrastructure/storage"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared"
	"github.com/Kingsley6145/gamebridge-admin/pkg/logger"
)

// TaskEnqueuer is the slice of asynq.Client the synchronizer uses to
// hand freshly uploaded covers to the worker.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Synchronizer owns the authoritative in-memory course list. With a
// realtime store it mirrors every push wholesale; mutations patch the
// list optimistically on success so readers see the result before the
// next push arrives. A push is always a full replace, so an optimistic
// patch is only a prediction that the next push overwrites.
type Synchronizer struct {
	store    repository.Store
	uploader CoverUploader
	tasks    TaskEnqueuer // optional; nil disables background processing

	mu          sync.RWMutex
	courses     []model.Course
	loading     bool
	lastErr     error
	unsubscribe func()
}

var _ CourseSync = (*Synchronizer)(nil)

func NewSynchronizer(store repository.Store, uploader CoverUploader, tasks TaskEnqueuer) *Synchronizer {
	return &Synchronizer{
		store:    store,
		uploader: uploader,
		tasks:    tasks,
		courses:  []model.Course{},
		loading:  true,
	}
}

// Start opens the live subscription when the store supports one;
// otherwise it loads the collection once and keeps no channel open.
func (s *Synchronizer) Start(ctx context.Context) error {
	if watcher, ok := s.store.(repository.Watcher); ok {
		unsubscribe, err := watcher.Subscribe(ctx, s.applySnapshot)
		if err != nil {
			s.setError(err)
			return err
		}

		s.mu.Lock()
		s.unsubscribe = unsubscribe
		s.mu.Unlock()
		return nil
	}

	courses, err := s.store.GetAll(ctx)
	if err != nil {
		s.setError(err)
		return err
	}

	s.applySnapshot(courses)
	return nil
}

// Stop tears down the live subscription. Idempotent.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// applySnapshot replaces local state wholesale. Every push is
// authoritative and total; it supersedes any optimistic patch.
func (s *Synchronizer) applySnapshot(courses []model.Course) {
	if courses == nil {
		courses = []model.Course{}
	}

	s.mu.Lock()
	s.courses = courses
	s.loading = false
	s.lastErr = nil
	s.mu.Unlock()

	logger.Debug("course list replaced from store push")
}

func (s *Synchronizer) setError(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()
}

// Courses returns a read-only copy of the current list.
func (s *Synchronizer) Courses() []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Course, len(s.courses))
	for i, c := range s.courses {
		out[i] = c.Clone()
	}
	return out
}

func (s *Synchronizer) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Synchronizer) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// GetByID reads through to the store so callers editing a course see
// canonical data, not a possibly stale local entry.
func (s *Synchronizer) GetByID(ctx context.Context, id string) (*model.Course, error) {
	return s.store.GetByID(ctx, id)
}

// Create validates, uploads a pending cover, persists, then appends
// optimistically. Local state is untouched on failure.
func (s *Synchronizer) Create(ctx context.Context, actor string, data model.CourseData, image *ImageFile) (model.Course, error) {
	course, err := s.prepare(ctx, actor, data, image)
	if err != nil {
		return model.Course{}, err
	}

	created, err := s.store.Create(ctx, course)
	if err != nil {
		return model.Course{}, err
	}

	s.mu.Lock()
	s.courses = append(s.courses, created.Clone())
	s.mu.Unlock()

	if image != nil {
		s.enqueueCoverJob(created.ID, created.CoverImage)
	}

	return created, nil
}

// Update runs the same upload-then-persist flow against an existing
// document, then replaces the matching local entry.
func (s *Synchronizer) Update(ctx context.Context, actor, id string, data model.CourseData, image *ImageFile) (model.Course, error) {
	course, err := s.prepare(ctx, actor, data, image)
	if err != nil {
		return model.Course{}, err
	}

	updated, err := s.store.Update(ctx, id, course)
	if err != nil {
		return model.Course{}, err
	}

	s.mu.Lock()
	for i := range s.courses {
		if s.courses[i].ID == id {
			s.courses[i] = updated.Clone()
			break
		}
	}
	s.mu.Unlock()

	if image != nil {
		s.enqueueCoverJob(updated.ID, updated.CoverImage)
	}

	return updated, nil
}

func (s *Synchronizer) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.courses[:0]
	for _, c := range s.courses {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.courses = kept
	s.mu.Unlock()

	return nil
}

func (s *Synchronizer) Duplicate(ctx context.Context, id string) (model.Course, error) {
	created, err := s.store.Duplicate(ctx, id)
	if err != nil {
		return model.Course{}, err
	}

	s.mu.Lock()
	s.courses = append(s.courses, created.Clone())
	s.mu.Unlock()

	return created, nil
}

// enqueueCoverJob hands a freshly uploaded cover to the worker for
// variant generation. Best effort: the document is already saved, so a
// queue failure only costs the variants.
func (s *Synchronizer) enqueueCoverJob(courseID, coverURL string) {
	if s.tasks == nil {
		return
	}

	payload, err := json.Marshal(shared.ProcessCoverPayload{CourseID: courseID, CoverURL: coverURL})
	if err != nil {
		logger.Error("failed to marshal cover job payload", err)
		return
	}

	if _, err := s.tasks.Enqueue(asynq.NewTask(shared.TypeProcessCover, payload)); err != nil {
		logger.Warn("failed to enqueue cover processing", err)
	}
}

// prepare validates the payload and substitutes a freshly uploaded
// cover URL when a file is attached. Validation failures never reach
// the store.
func (s *Synchronizer) prepare(ctx context.Context, actor string, data model.CourseData, image *ImageFile) (model.Course, error) {
	// A pending file stands in for the cover until it is uploaded, the
	// way the edit form shows the picked filename before submit.
	if image != nil && data.CoverImage == "" {
		data.CoverImage = image.Name
	}

	if err := data.Validate(); err != nil {
		return model.Course{}, err
	}

	if image != nil {
		url, err := s.uploader.UploadImage(ctx, actor, image.Name, image.ContentType, image.Data)
		if err != nil {
			return model.Course{}, classifyUploadError(err)
		}
		data.CoverImage = url
	}

	return data.ToCourse(), nil
}

// classifyUploadError folds media-gateway failures into the course
// error taxonomy so a rejected cover answers like any other bad field
// instead of a generic failure.
func classifyUploadError(err error) error {
	switch {
	case errors.Is(err, media.ErrAuthRequired):
		return model.ErrAuthRequired
	case errors.Is(err, storage.ErrAccessDenied):
		return model.ErrPermissionDenied
	case errors.Is(err, media.ErrInvalidFile):
		return fmt.Errorf("%w: %s", model.ErrInvalidUpload, err.Error())
	}
	return err
}
