package quiz

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iamvtyagi/flashLearn/internal/types"
)

// StripCodeFences removes markdown code-fence wrappers the model sometimes
// puts around its JSON reply.
func StripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// rawQuestion holds one question before its option encoding is resolved.
// Options stays raw because the model has been observed returning both a
// keyed object ({"A": ...}) and a positional array of four strings; the
// answer field name likewise drifts between "correctAnswer" and "answer".
type rawQuestion struct {
	Question      string          `json:"question"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer string          `json:"correctAnswer"`
	Answer        string          `json:"answer"`
	Explanation   string          `json:"explanation"`
}

type rawSet struct {
	QuizTitle string        `json:"quizTitle"`
	Questions []rawQuestion `json:"questions"`
}

// ParseQuestionSet parses the cleaned model output into the canonical keyed
// shape. Both observed top-level encodings are accepted: an object with
// quizTitle/questions, or a bare array of questions. Every shape violation
// (wrong question count, wrong option count, unresolvable answer) is a parse
// error; nothing half-valid gets through.
func ParseQuestionSet(raw string) (types.QuestionSet, error) {
	text := StripCodeFences(raw)

	var rs rawSet
	if err := json.Unmarshal([]byte(text), &rs); err != nil || len(rs.Questions) == 0 {
		var arr []rawQuestion
		if arrErr := json.Unmarshal([]byte(text), &arr); arrErr != nil || len(arr) == 0 {
			if err == nil {
				err = fmt.Errorf("no questions in response")
			}
			return types.QuestionSet{}, fmt.Errorf("parse question set: %w", err)
		}
		rs = rawSet{Questions: arr}
	}

	set := types.QuestionSet{Title: rs.QuizTitle}
	for i, rq := range rs.Questions {
		q, err := resolveQuestion(rq)
		if err != nil {
			return types.QuestionSet{}, fmt.Errorf("question %d: %w", i+1, err)
		}
		set.Questions = append(set.Questions, q)
	}

	if err := set.Validate(); err != nil {
		return types.QuestionSet{}, err
	}
	return set, nil
}

func resolveQuestion(rq rawQuestion) (types.Question, error) {
	options, err := resolveOptions(rq.Options)
	if err != nil {
		return types.Question{}, err
	}

	answer := rq.CorrectAnswer
	if answer == "" {
		answer = rq.Answer
	}
	key, err := resolveAnswer(answer, options)
	if err != nil {
		return types.Question{}, err
	}

	return types.Question{
		Question:      strings.TrimSpace(rq.Question),
		Options:       options,
		CorrectAnswer: key,
		Explanation:   strings.TrimSpace(rq.Explanation),
	}, nil
}

// resolveOptions converts either option encoding into the canonical keyed map.
func resolveOptions(raw json.RawMessage) (map[types.OptionKey]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("options missing")
	}

	var keyed map[string]string
	if err := json.Unmarshal(raw, &keyed); err == nil {
		if len(keyed) != len(types.OptionKeys) {
			return nil, fmt.Errorf("expected %d options, got %d", len(types.OptionKeys), len(keyed))
		}
		out := make(map[types.OptionKey]string, len(keyed))
		for k, v := range keyed {
			key := types.OptionKey(strings.ToUpper(strings.TrimSpace(k)))
			out[key] = v
		}
		for _, k := range types.OptionKeys {
			if _, ok := out[k]; !ok {
				return nil, fmt.Errorf("missing option %q", k)
			}
		}
		return out, nil
	}

	var positional []string
	if err := json.Unmarshal(raw, &positional); err != nil {
		return nil, fmt.Errorf("options are neither keyed nor positional: %w", err)
	}
	if len(positional) != len(types.OptionKeys) {
		return nil, fmt.Errorf("expected %d options, got %d", len(types.OptionKeys), len(positional))
	}
	out := make(map[types.OptionKey]string, len(positional))
	for i, v := range positional {
		out[types.OptionKeys[i]] = v
	}
	return out, nil
}

// resolveAnswer maps the model's correct-answer reference, either an option
// key or the option's full text, onto a key of the resolved options.
func resolveAnswer(answer string, options map[types.OptionKey]string) (types.OptionKey, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", fmt.Errorf("correct answer missing")
	}

	if key := types.OptionKey(strings.ToUpper(answer)); len(answer) == 1 {
		if _, ok := options[key]; ok {
			return key, nil
		}
		return "", fmt.Errorf("correct answer key %q is not among the options", answer)
	}

	for _, k := range types.OptionKeys {
		if strings.EqualFold(strings.TrimSpace(options[k]), answer) {
			return k, nil
		}
	}
	return "", fmt.Errorf("correct answer %q does not match any option", answer)
}
