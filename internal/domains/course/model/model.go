package model

// Course is the root aggregate of the catalog: one entry with its
// embedded lesson modules and quiz questions. Documents travel whole;
// modules and questions are never persisted on their own.
type Course struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Duration   string     `json:"duration"` // "2h 46min"
	Rating     float64    `json:"rating"`   // 0-5
	Students   int        `json:"students"`
	IsTrendy   bool       `json:"isTrendy"`
	IsPremium  bool       `json:"isPremium"`
	CoverImage string     `json:"coverImage"` // URL or storage path
	Modules    []Module   `json:"modules"`
	Questions  []Question `json:"questions"`
	CreatedAt  int64      `json:"createdAt"` // epoch millis, store-assigned
	UpdatedAt  int64      `json:"updatedAt"` // refreshed on every write
}

// Module is an embedded lesson unit: video + markdown, optional HTML.
type Module struct {
	ID                  string `json:"id"` // client-generated, unique within the course
	Title               string `json:"title"`
	Duration            string `json:"duration"` // "4:28 mins"
	IconColor           string `json:"iconColor"`
	VideoURL            string `json:"videoUrl"`
	MarkdownDescription string `json:"markdownDescription"`
	HTMLContent         string `json:"htmlContent,omitempty"`
}

// Question is an embedded multiple-choice quiz item.
type Question struct {
	ID                 string   `json:"id"` // client-generated
	Question           string   `json:"question"`
	Options            []string `json:"options"` // exactly 4
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// IconColors is the fixed palette module icons may use.
var IconColors = []string{
	"#FF6B35", // orange
	"#FFB74D", // light orange
	"#4A90E2", // blue
	"#BA1E4D", // purple
}

// Clone deep-copies a course so callers can hand out mutable drafts
// without aliasing the canonical list.
func (c Course) Clone() Course {
	out := c
	if c.Modules != nil {
		out.Modules = make([]Module, len(c.Modules))
		copy(out.Modules, c.Modules)
	}
	if c.Questions != nil {
		out.Questions = make([]Question, len(c.Questions))
		for i, q := range c.Questions {
			out.Questions[i] = q
			if q.Options != nil {
				out.Questions[i].Options = append([]string(nil), q.Options...)
			}
		}
	}
	return out
}
