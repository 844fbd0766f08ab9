package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	courseDurationPattern = regexp.MustCompile(`^\d+h \d+min$`)
	moduleDurationPattern = regexp.MustCompile(`^\d+:\d+ mins$`)
)

// CourseData is the client write payload for create/update. The store
// assigns id and timestamps; clients never send them.
type CourseData struct {
	Title      string     `json:"title"`
	Duration   string     `json:"duration"`
	Rating     float64    `json:"rating"`
	Students   int        `json:"students"`
	IsTrendy   bool       `json:"isTrendy"`
	IsPremium  bool       `json:"isPremium"`
	CoverImage string     `json:"coverImage"`
	Modules    []Module   `json:"modules"`
	Questions  []Question `json:"questions"`
}

func (d CourseData) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 100).Error("title must be 3-100 characters"),
		),
		validation.Field(&d.Duration,
			validation.Required.Error("duration is required"),
			validation.Match(courseDurationPattern).Error(`duration must be in format "Xh Ymin" (e.g., "2h 46min")`),
		),
		validation.Field(&d.Rating,
			validation.Min(0.0).Error("rating must be between 0 and 5"),
			validation.Max(5.0).Error("rating must be between 0 and 5"),
		),
		validation.Field(&d.Students,
			validation.Min(0).Error("students count must be at least 0"),
		),
		validation.Field(&d.CoverImage,
			validation.Required.Error("cover image is required"),
		),
	)
}

// ToCourse builds a Course document from the payload. Identity and
// timestamps stay zero; the store stamps them.
func (d CourseData) ToCourse() Course {
	modules := d.Modules
	if modules == nil {
		modules = []Module{}
	}
	questions := d.Questions
	if questions == nil {
		questions = []Question{}
	}
	return Course{
		Title:      d.Title,
		Duration:   d.Duration,
		Rating:     d.Rating,
		Students:   d.Students,
		IsTrendy:   d.IsTrendy,
		IsPremium:  d.IsPremium,
		CoverImage: d.CoverImage,
		Modules:    modules,
		Questions:  questions,
	}
}

// Data strips identity and timestamps, producing the write payload
// that reconstructs this document for a full-replace update.
func (c Course) Data() CourseData {
	return CourseData{
		Title:      c.Title,
		Duration:   c.Duration,
		Rating:     c.Rating,
		Students:   c.Students,
		IsTrendy:   c.IsTrendy,
		IsPremium:  c.IsPremium,
		CoverImage: c.CoverImage,
		Modules:    c.Modules,
		Questions:  c.Questions,
	}
}

// ValidateModule gates a module before it is committed into a draft.
// pendingVideo means a video file is still waiting to be uploaded, in
// which case videoUrl may be empty.
func ValidateModule(m Module, pendingVideo bool) error {
	iconColors := make([]interface{}, len(IconColors))
	for i, c := range IconColors {
		iconColors[i] = c
	}

	return validation.ValidateStruct(&m,
		validation.Field(&m.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 100).Error("title must be at least 3 characters"),
		),
		validation.Field(&m.Duration,
			validation.Required.Error("duration is required"),
			validation.Match(moduleDurationPattern).Error(`duration must be in format "X:XX mins" (e.g., "4:28 mins")`),
		),
		validation.Field(&m.IconColor,
			validation.Required.Error("icon color is required"),
			validation.In(iconColors...).Error("icon color must be from the palette"),
		),
		validation.Field(&m.VideoURL,
			validation.When(!pendingVideo,
				validation.Required.Error("video is required"),
			),
		),
		validation.Field(&m.MarkdownDescription,
			validation.Required.Error("description is required"),
			validation.Length(50, 0).Error("description must be at least 50 characters"),
		),
	)
}

// ValidateQuestion gates a quiz question before it is committed into a
// draft.
func ValidateQuestion(q Question) error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Question,
			validation.Required.Error("question is required"),
			validation.Length(10, 0).Error("question must be at least 10 characters"),
		),
		validation.Field(&q.Options,
			validation.Required.Error("exactly 4 options are required"),
			validation.Length(4, 4).Error("exactly 4 options are required"),
			validation.Each(
				validation.Required.Error("option is required"),
				validation.Length(2, 0).Error("option must be at least 2 characters"),
			),
		),
		validation.Field(&q.CorrectAnswerIndex,
			validation.Min(0).Error("correct answer must reference one of the 4 options"),
			validation.Max(3).Error("correct answer must reference one of the 4 options"),
		),
	)
}
