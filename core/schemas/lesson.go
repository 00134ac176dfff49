package schemas

// Defaults applied when the system prompt carries no corresponding tag.
const (
	DefaultSubject  = "Physics"
	DefaultChapter  = "General"
	DefaultLesson   = "Introduction"
	DefaultLevel    = "High School"
	DefaultLanguage = "en"
	DefaultStudent  = "Student"

	// DefaultCompetence is the sentinel competence entry. When the extracted
	// competence still equals this sentinel and a lesson is set, the extractor
	// replaces it with a lesson-derived entry. An explicit [COMPETENCE: ...]
	// tag matching the sentinel is therefore indistinguishable from an absent
	// tag; this mirrors the behavior of the upstream bridge deployments.
	DefaultCompetence = "Understanding the core concepts"
)

// LessonConfig holds the teaching parameters extracted from a system prompt.
// Every field is always populated; absent tags fall back to the defaults
// above, so the extractor that produces this structure is total.
type LessonConfig struct {
	Subject    string   `json:"subject"`
	Chapter    string   `json:"chapter"`
	Lesson     string   `json:"lesson"`
	Level      string   `json:"level"`
	Language   string   `json:"language"`
	Student    string   `json:"student"`
	Competence []string `json:"competence"` // At least one entry
}
