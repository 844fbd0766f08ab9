package repository

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
)

// decodeCourse unmarshals a stored document. The store key always wins
// over any id embedded in the document value.
func decodeCourse(id string, doc []byte) (model.Course, error) {
	var course model.Course
	if err := json.Unmarshal(doc, &course); err != nil {
		return model.Course{}, fmt.Errorf("malformed course document %s: %w", id, err)
	}
	course.ID = id
	return course, nil
}

// sortByCreation materializes arrival order from the create stamp, id
// as tiebreak. Keyed reads come back unordered.
func sortByCreation(courses []model.Course) {
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].CreatedAt != courses[j].CreatedAt {
			return courses[i].CreatedAt < courses[j].CreatedAt
		}
		return courses[i].ID < courses[j].ID
	})
}
