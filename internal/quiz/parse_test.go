package quiz

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/iamvtyagi/flashLearn/internal/types"
)

func keyedQuestionJSON(i int) string {
	return fmt.Sprintf(`{
		"question": "Question %d?",
		"options": {"A": "one", "B": "two", "C": "three", "D": "four"},
		"correctAnswer": "C",
		"explanation": "because"
	}`, i)
}

func keyedSetJSON(n int) string {
	qs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		qs = append(qs, keyedQuestionJSON(i+1))
	}
	return fmt.Sprintf(`{"quizTitle": "My Quiz", "questions": [%s]}`, strings.Join(qs, ","))
}

func TestParseQuestionSetKeyed(t *testing.T) {
	set, err := ParseQuestionSet(keyedSetJSON(types.QuestionCount))
	if err != nil {
		t.Fatalf("ParseQuestionSet: %v", err)
	}
	if set.Title != "My Quiz" {
		t.Fatalf("title: want=%q got=%q", "My Quiz", set.Title)
	}
	if len(set.Questions) != types.QuestionCount {
		t.Fatalf("questions: want=%d got=%d", types.QuestionCount, len(set.Questions))
	}
	q := set.Questions[0]
	if q.CorrectAnswer != "C" {
		t.Fatalf("correctAnswer: want=%q got=%q", "C", q.CorrectAnswer)
	}
	if q.Options["C"] != "three" {
		t.Fatalf("option C: want=%q got=%q", "three", q.Options["C"])
	}
}

func TestParseQuestionSetCodeFenced(t *testing.T) {
	fenced := "```json\n" + keyedSetJSON(types.QuestionCount) + "\n```"
	set, err := ParseQuestionSet(fenced)
	if err != nil {
		t.Fatalf("ParseQuestionSet: %v", err)
	}
	if len(set.Questions) != types.QuestionCount {
		t.Fatalf("questions: want=%d got=%d", types.QuestionCount, len(set.Questions))
	}
}

func TestParseQuestionSetPositionalOptions(t *testing.T) {
	qs := make([]string, 0, types.QuestionCount)
	for i := 0; i < types.QuestionCount; i++ {
		qs = append(qs, fmt.Sprintf(`{
			"question": "Question %d?",
			"options": ["one", "two", "three", "four"],
			"answer": "three",
			"explanation": "because"
		}`, i+1))
	}
	raw := fmt.Sprintf(`{"questions": [%s]}`, strings.Join(qs, ","))

	set, err := ParseQuestionSet(raw)
	if err != nil {
		t.Fatalf("ParseQuestionSet: %v", err)
	}
	q := set.Questions[0]
	if q.CorrectAnswer != "C" {
		t.Fatalf("correctAnswer: want=%q got=%q", "C", q.CorrectAnswer)
	}
	if q.Options["A"] != "one" || q.Options["D"] != "four" {
		t.Fatalf("positional options not mapped in order: %v", q.Options)
	}
}

func TestParseQuestionSetBareArray(t *testing.T) {
	qs := make([]string, 0, types.QuestionCount)
	for i := 0; i < types.QuestionCount; i++ {
		qs = append(qs, keyedQuestionJSON(i+1))
	}
	raw := "[" + strings.Join(qs, ",") + "]"

	set, err := ParseQuestionSet(raw)
	if err != nil {
		t.Fatalf("ParseQuestionSet: %v", err)
	}
	if len(set.Questions) != types.QuestionCount {
		t.Fatalf("questions: want=%d got=%d", types.QuestionCount, len(set.Questions))
	}
}

func TestParseQuestionSetAnswerByText(t *testing.T) {
	qs := make([]string, 0, types.QuestionCount)
	for i := 0; i < types.QuestionCount; i++ {
		qs = append(qs, fmt.Sprintf(`{
			"question": "Question %d?",
			"options": {"A": "one", "B": "two", "C": "three", "D": "four"},
			"correctAnswer": "Two",
			"explanation": ""
		}`, i+1))
	}
	raw := fmt.Sprintf(`{"questions": [%s]}`, strings.Join(qs, ","))

	set, err := ParseQuestionSet(raw)
	if err != nil {
		t.Fatalf("ParseQuestionSet: %v", err)
	}
	if set.Questions[0].CorrectAnswer != "B" {
		t.Fatalf("correctAnswer: want=%q got=%q", "B", set.Questions[0].CorrectAnswer)
	}
}

func TestParseQuestionSetRejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"truncated json", keyedSetJSON(types.QuestionCount)[:40]},
		{"no questions", `{"quizTitle": "x", "questions": []}`},
		{"too few questions", keyedSetJSON(types.QuestionCount - 1)},
		{"too many questions", keyedSetJSON(types.QuestionCount + 1)},
		{"three options", `{"questions": [{
			"question": "Q?",
			"options": {"A": "one", "B": "two", "C": "three"},
			"correctAnswer": "A"
		}]}`},
		{"answer not among options", `{"questions": [{
			"question": "Q?",
			"options": {"A": "one", "B": "two", "C": "three", "D": "four"},
			"correctAnswer": "E"
		}]}`},
		{"answer text mismatch", `{"questions": [{
			"question": "Q?",
			"options": {"A": "one", "B": "two", "C": "three", "D": "four"},
			"correctAnswer": "five"
		}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseQuestionSet(tc.raw); err == nil {
				t.Fatalf("want parse error, got nil")
			}
		})
	}
}

func TestParseQuestionSetLowercaseKeys(t *testing.T) {
	qs := make([]string, 0, types.QuestionCount)
	for i := 0; i < types.QuestionCount; i++ {
		qs = append(qs, fmt.Sprintf(`{
			"question": "Question %d?",
			"options": {"a": "one", "b": "two", "c": "three", "d": "four"},
			"correctAnswer": "d"
		}`, i+1))
	}
	raw := fmt.Sprintf(`{"questions": [%s]}`, strings.Join(qs, ","))

	set, err := ParseQuestionSet(raw)
	if err != nil {
		t.Fatalf("ParseQuestionSet: %v", err)
	}
	if set.Questions[0].CorrectAnswer != "D" {
		t.Fatalf("correctAnswer: want=%q got=%q", "D", set.Questions[0].CorrectAnswer)
	}
}

func TestParsedSetsRoundTripCanonical(t *testing.T) {
	set, err := ParseQuestionSet(keyedSetJSON(types.QuestionCount))
	if err != nil {
		t.Fatalf("ParseQuestionSet: %v", err)
	}
	b, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"quizTitle"`) {
		t.Fatalf("canonical encoding missing quizTitle: %s", b)
	}
	if !strings.Contains(string(b), `"A":"one"`) {
		t.Fatalf("canonical encoding not keyed: %s", b)
	}
}

func TestBuildPromptEmbedsCountAndText(t *testing.T) {
	p := BuildPrompt("  some transcript  ", types.QuestionCount)
	if !strings.Contains(p, fmt.Sprintf("exactly %d MCQs", types.QuestionCount)) {
		t.Fatalf("prompt missing count: %s", p)
	}
	if !strings.Contains(p, `Transcript: "some transcript"`) {
		t.Fatalf("prompt missing trimmed transcript: %s", p)
	}
}
