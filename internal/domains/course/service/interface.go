package service

import (
	"context"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
)

// ImageFile is a pending cover upload attached to a create or update.
type ImageFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// CoverUploader is the slice of the media gateway the synchronizer
// needs: upload a cover first, substitute the resulting URL.
type CoverUploader interface {
	UploadImage(ctx context.Context, actor, filename, contentType string, data []byte) (string, error)
}

// CourseSync is the synchronizer surface handlers consume.
type CourseSync interface {
	Start(ctx context.Context) error
	Stop()

	Courses() []model.Course
	Loading() bool
	Err() error

	GetByID(ctx context.Context, id string) (*model.Course, error)
	Create(ctx context.Context, actor string, data model.CourseData, image *ImageFile) (model.Course, error)
	Update(ctx context.Context, actor, id string, data model.CourseData, image *ImageFile) (model.Course, error)
	Delete(ctx context.Context, id string) error
	Duplicate(ctx context.Context, id string) (model.Course, error)
}
