package domain

// OptionCount is the fixed number of options every normalized question carries.
const OptionCount = 4

// NoAnswer is the parser sentinel for a missing or unrecognized declared answer.
const NoAnswer = -1

// NoSelection marks a question that was left unanswered in a graded attempt.
const NoSelection = -1

// QuizRequest captures the user's quiz generation input. Immutable once submitted.
type QuizRequest struct {
	Topic          string `json:"topic"`
	RequestedCount int    `json:"questionCount"`
	Difficulty     string `json:"difficulty"`
}

// DraftQuestion is a partially parsed question before invariant enforcement.
// Options holds zero or more entries in encountered order; CorrectIndex is
// NoAnswer until an answer declaration resolves it.
type DraftQuestion struct {
	Text         string
	Options      []string
	CorrectIndex int
}

// Question is a normalized multiple-choice question: exactly OptionCount
// options and a CorrectIndex that always resolves to one of them.
type Question struct {
	ID           int      `json:"id"`
	Text         string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctAnswer"`
}

// Quiz is the active, gradable quiz for one session. Question order is
// significant; it drives numbering and result reporting.
type Quiz struct {
	Topic          string     `json:"topic"`
	Questions      []Question `json:"questions"`
	RequestedCount int        `json:"requestedCount"`
}

// QuestionResult is the per-question breakdown inside a graded result. It is
// denormalized so the presentation layer never needs the quiz again.
type QuestionResult struct {
	Question      string   `json:"question"`
	SelectedIndex int      `json:"selected"` // NoSelection when unanswered
	CorrectIndex  int      `json:"correct"`
	Correct       bool     `json:"isCorrect"`
	Options       []string `json:"options"`
}

// GradedResult is the scored outcome of one quiz attempt. Never mutated after
// construction; recomputed fully on each submission.
type GradedResult struct {
	Topic       string           `json:"topic"`
	Score       int              `json:"score"`
	Total       int              `json:"total"`
	Percentage  int              `json:"percentage"`
	PerQuestion []QuestionResult `json:"results"`
}

// DocumentUpload carries an uploaded file plus optional analysis instructions.
type DocumentUpload struct {
	Name         string
	ContentType  string
	Size         int64
	Data         []byte
	Instructions string
}
