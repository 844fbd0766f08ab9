package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kingsley6145/gamebridge-admin/internal/domains/course/model"
)

func draftCourse() model.Course {
	return model.Course{
		ID:         "c1",
		Title:      "Game Design Fundamentals",
		Duration:   "2h 46min",
		CoverImage: "https://cdn.example.com/cover.png",
		Modules: []model.Module{
			{ID: "m1", Title: "First Module", Duration: "4:28 mins", IconColor: "#FF6B35",
				VideoURL: "https://cdn.example.com/one.mp4", MarkdownDescription: strings.Repeat("one ", 15)},
			{ID: "m2", Title: "Second Module", Duration: "6:02 mins", IconColor: "#4A90E2",
				VideoURL: "https://cdn.example.com/two.mp4", MarkdownDescription: strings.Repeat("two ", 15)},
		},
		Questions: []model.Question{
			{ID: "q1", Question: "What makes a good tutorial level?",
				Options: []string{"Pacing", "Clarity", "Safety", "All of the above"}, CorrectAnswerIndex: 3},
		},
	}
}

func newModule() model.Module {
	return model.Module{
		Title:               "Third Module",
		Duration:            "3:15 mins",
		IconColor:           "#FFB74D",
		VideoURL:            "https://cdn.example.com/three.mp4",
		MarkdownDescription: strings.Repeat("three ", 12),
	}
}

func TestAddModule(t *testing.T) {
	draft := draftCourse()

	out, err := AddModule(draft, newModule(), false)
	require.NoError(t, err)

	require.Len(t, out.Modules, 3)
	assert.Equal(t, "Third Module", out.Modules[2].Title)
	assert.NotEmpty(t, out.Modules[2].ID)

	// Input draft untouched.
	assert.Len(t, draft.Modules, 2)
}

func TestAddModuleRejectsInvalid(t *testing.T) {
	draft := draftCourse()

	m := newModule()
	m.MarkdownDescription = "short"

	out, err := AddModule(draft, m, false)
	require.Error(t, err)
	assert.Equal(t, draft, out)
}

func TestEditModulePreservesOrder(t *testing.T) {
	draft := draftCourse()

	edited := newModule()
	edited.ID = "m1"

	out, found, err := EditModule(draft, edited, false)
	require.NoError(t, err)
	assert.True(t, found)

	require.Len(t, out.Modules, 2)
	assert.Equal(t, "m1", out.Modules[0].ID)
	assert.Equal(t, "Third Module", out.Modules[0].Title)
	assert.Equal(t, "m2", out.Modules[1].ID)
}

func TestEditModuleAbsentIDIsNoOp(t *testing.T) {
	draft := draftCourse()

	edited := newModule()
	edited.ID = "missing"

	out, found, err := EditModule(draft, edited, false)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, draft, out)
}

func TestDeleteModule(t *testing.T) {
	out := DeleteModule(draftCourse(), "m1")
	require.Len(t, out.Modules, 1)
	assert.Equal(t, "m2", out.Modules[0].ID)

	// Absent ids are a no-op.
	out = DeleteModule(draftCourse(), "missing")
	assert.Len(t, out.Modules, 2)
}

func TestAddQuestion(t *testing.T) {
	q := model.Question{
		Question:           "Which engine popularized visual scripting?",
		Options:            []string{"Unity", "Unreal", "Godot", "GameMaker"},
		CorrectAnswerIndex: 1,
	}

	out, err := AddQuestion(draftCourse(), q)
	require.NoError(t, err)
	require.Len(t, out.Questions, 2)
	assert.NotEmpty(t, out.Questions[1].ID)
}

func TestEditQuestionAbsentIDIsNoOp(t *testing.T) {
	draft := draftCourse()

	q := draft.Questions[0]
	q.ID = "missing"

	out, found, err := EditQuestion(draft, q)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, draft, out)
}

func TestDeleteQuestion(t *testing.T) {
	out := DeleteQuestion(draftCourse(), "q1")
	assert.Empty(t, out.Questions)
}

func TestPreserveVideoURL(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		previous string
		want     string
	}{
		{"https wins", "https://cdn.example.com/new.mp4", "https://cdn.example.com/old.mp4", "https://cdn.example.com/new.mp4"},
		{"http wins", "http://cdn.example.com/new.mp4", "https://cdn.example.com/old.mp4", "http://cdn.example.com/new.mp4"},
		{"filename keeps previous", "new.mp4", "https://cdn.example.com/old.mp4", "https://cdn.example.com/old.mp4"},
		{"empty keeps previous", "", "https://cdn.example.com/old.mp4", "https://cdn.example.com/old.mp4"},
		{"both empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreserveVideoURL(tt.incoming, tt.previous))
		})
	}
}
