package shared

// Task type names shared between the API (producer) and the worker
// (consumer).
const (
	TypeProcessCover   = "course:process_cover"
	TypeCleanupOrphans = "media:cleanup_orphans"
)

// ProcessCoverPayload asks the worker to build resized variants of a
// freshly uploaded course cover.
type ProcessCoverPayload struct {
	CourseID string `json:"courseId"`
	CoverURL string `json:"coverUrl"`
}
