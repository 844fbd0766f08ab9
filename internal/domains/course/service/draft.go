package service

import (
	"strings"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
)

// Draft operations: pure reducer-style edits over a course's embedded
// modules and questions, applied while the document is being built or
// edited, before any persistence. Every operation validates first and
// returns the draft unchanged alongside the error when validation
// fails. Inputs are never mutated.

// AddModule appends a module to the draft, generating its id when the
// caller did not.
func AddModule(draft model.Course, m model.Module, pendingVideo bool) (model.Course, error) {
	if err := model.ValidateModule(m, pendingVideo); err != nil {
		return draft, err
	}

	if m.ID == "" {
		m.ID = model.NewEntryID()
	}

	out := draft.Clone()
	out.Modules = append(out.Modules, m)
	return out, nil
}

// EditModule replaces the module whose id matches, preserving array
// length and the relative order of everything else. An absent id is a
// no-op: found reports false and the draft comes back unchanged.
func EditModule(draft model.Course, m model.Module, pendingVideo bool) (out model.Course, found bool, err error) {
	if err := model.ValidateModule(m, pendingVideo); err != nil {
		return draft, false, err
	}

	out = draft.Clone()
	for i := range out.Modules {
		if out.Modules[i].ID == m.ID {
			out.Modules[i] = m
			return out, true, nil
		}
	}
	return draft, false, nil
}

// DeleteModule removes the matching module; absent ids are a no-op.
func DeleteModule(draft model.Course, moduleID string) model.Course {
	out := draft.Clone()
	kept := out.Modules[:0]
	for _, m := range out.Modules {
		if m.ID != moduleID {
			kept = append(kept, m)
		}
	}
	out.Modules = kept
	return out
}

// AddQuestion appends a quiz question to the draft.
func AddQuestion(draft model.Course, q model.Question) (model.Course, error) {
	if err := model.ValidateQuestion(q); err != nil {
		return draft, err
	}

	if q.ID == "" {
		q.ID = model.NewEntryID()
	}

	out := draft.Clone()
	out.Questions = append(out.Questions, q)
	return out, nil
}

// EditQuestion replaces the question whose id matches; absent ids are
// a no-op, reported via found.
func EditQuestion(draft model.Course, q model.Question) (out model.Course, found bool, err error) {
	if err := model.ValidateQuestion(q); err != nil {
		return draft, false, err
	}

	out = draft.Clone()
	for i := range out.Questions {
		if out.Questions[i].ID == q.ID {
			out.Questions[i] = q
			return out, true, nil
		}
	}
	return draft, false, nil
}

// DeleteQuestion removes the matching question; absent ids are a no-op.
func DeleteQuestion(draft model.Course, questionID string) model.Course {
	out := draft.Clone()
	kept := out.Questions[:0]
	for _, q := range out.Questions {
		if q.ID != questionID {
			kept = append(kept, q)
		}
	}
	out.Questions = kept
	return out
}

// PreserveVideoURL decides which video URL an edited module keeps when
// no new file was uploaded: the incoming value wins only when it is
// already a real URL, otherwise the previously stored one survives.
func PreserveVideoURL(incoming, previous string) string {
	if strings.HasPrefix(incoming, "http://") || strings.HasPrefix(incoming, "https://") {
		return incoming
	}
	return previous
}
