package types

import "fmt"

// OptionKey labels one of the four choices of a multiple-choice question.
type OptionKey string

const (
	OptionA OptionKey = "A"
	OptionB OptionKey = "B"
	OptionC OptionKey = "C"
	OptionD OptionKey = "D"
)

// OptionKeys is the canonical label order.
var OptionKeys = []OptionKey{OptionA, OptionB, OptionC, OptionD}

// QuestionCount is the number of questions every generated set carries.
const QuestionCount = 10

// Question is a single multiple-choice item in the canonical keyed encoding.
// Positional option arrays coming back from the model are converted to this
// shape at the parse boundary; nothing downstream sees them.
type Question struct {
	Question      string               `json:"question"`
	Options       map[OptionKey]string `json:"options"`
	CorrectAnswer OptionKey            `json:"correctAnswer"`
	Explanation   string               `json:"explanation,omitempty"`
}

// Validate checks the per-question invariants: non-empty text, exactly four
// options labeled A-D, and a correct answer that is one of them.
func (q Question) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != len(OptionKeys) {
		return fmt.Errorf("expected %d options, got %d", len(OptionKeys), len(q.Options))
	}
	for _, k := range OptionKeys {
		if _, ok := q.Options[k]; !ok {
			return fmt.Errorf("missing option %q", k)
		}
	}
	if _, ok := q.Options[q.CorrectAnswer]; !ok {
		return fmt.Errorf("correct answer %q is not among the options", q.CorrectAnswer)
	}
	return nil
}

// QuestionSet is the ordered set of questions generated for one job.
type QuestionSet struct {
	Title     string     `json:"quizTitle,omitempty"`
	Questions []Question `json:"questions"`
}

// Validate checks the set-level contract: exactly QuestionCount valid questions.
func (s QuestionSet) Validate() error {
	if len(s.Questions) != QuestionCount {
		return fmt.Errorf("expected %d questions, got %d", QuestionCount, len(s.Questions))
	}
	for i, q := range s.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}
