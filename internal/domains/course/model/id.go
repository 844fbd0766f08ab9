package model

import "github.com/rs/xid"

// NewEntryID generates an id for embedded modules/questions and for
// store documents: time-ordered with a random suffix, collision
// resistant under the single-writer-per-course assumption. These ids
// are never validated for uniqueness server-side.
func NewEntryID() string {
	return xid.New().String()
}
