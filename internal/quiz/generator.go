package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/iamvtyagi/flashLearn/internal/logger"
	"github.com/iamvtyagi/flashLearn/internal/pipeline"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

// TextModel is the generative backend the Generator prompts. Satisfied by
// the genai client; tests substitute a canned implementation.
type TextModel interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// Generator turns free-form source text into a ten-question set with a single
// prompt to the text model. There is no multi-turn correction loop and no
// automatic retry: a backend failure is GenerationFailed, an unparseable
// reply is MalformedResponse with the raw text logged for diagnosis.
type Generator struct {
	log   *logger.Logger
	model TextModel
	count int
}

func NewGenerator(log *logger.Logger, model TextModel) *Generator {
	return &Generator{
		log:   log.With("service", "QuizGenerator"),
		model: model,
		count: types.QuestionCount,
	}
}

func (g *Generator) Generate(ctx context.Context, sourceText string) (types.QuestionSet, error) {
	if strings.TrimSpace(sourceText) == "" {
		return types.QuestionSet{}, pipeline.NewError(pipeline.CodeGenerationFailed, errors.New("source text is empty"))
	}

	prompt := BuildPrompt(sourceText, g.count)
	g.log.Info("Generating questions", "source_len", len(sourceText))

	raw, err := g.model.GenerateJSON(ctx, prompt)
	if err != nil {
		return types.QuestionSet{}, pipeline.NewError(pipeline.CodeGenerationFailed, err)
	}

	set, err := ParseQuestionSet(raw)
	if err != nil {
		g.log.Error("Model returned malformed question set", "error", err, "raw", raw)
		return types.QuestionSet{}, pipeline.NewError(pipeline.CodeMalformedResponse, err)
	}

	g.log.Info("Questions generated", "count", len(set.Questions))
	return set, nil
}
