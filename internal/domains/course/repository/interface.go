package repository

import (
	"context"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
)

// Store is the document-store gateway for the flat course collection.
// Documents are written whole: Update is a full replace, never a
// field merge.
type Store interface {
	// GetAll returns every course, createdAt ascending.
	GetAll(ctx context.Context) ([]model.Course, error)

	// GetByID returns (nil, nil) when no document exists at id.
	GetByID(ctx context.Context, id string) (*model.Course, error)

	// Create assigns a fresh id, stamps createdAt/updatedAt and
	// returns the persisted document.
	Create(ctx context.Context, course model.Course) (model.Course, error)

	// Update replaces the document at id, preserving its createdAt and
	// restamping updatedAt. Fails with model.ErrCourseNotFound when the
	// document is absent.
	Update(ctx context.Context, id string, course model.Course) (model.Course, error)

	// Delete is idempotent; removing a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// Duplicate reads the source, strips its id, appends " (Copy)" to
	// the title and creates the result. Read + create, never a
	// store-side copy.
	Duplicate(ctx context.Context, id string) (model.Course, error)
}

// Watcher is implemented by stores that can push live updates. Every
// remote change delivers the complete current collection; the callback
// owns the slice it receives.
type Watcher interface {
	// Subscribe registers a live listener and returns its teardown.
	// Calling the teardown more than once is a safe no-op.
	Subscribe(ctx context.Context, fn func([]model.Course)) (func(), error)
}
