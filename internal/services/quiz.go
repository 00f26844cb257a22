package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/iamvtyagi/flashLearn/internal/apierr"
	"github.com/iamvtyagi/flashLearn/internal/logger"
	"github.com/iamvtyagi/flashLearn/internal/repos"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

type QuizService interface {
	SaveAttempt(ctx context.Context, userID string, score, totalQuestions, correctAnswers int, questions []types.Question) (*types.QuizAttempt, error)
	AttemptsForUser(ctx context.Context, userID string) ([]*types.QuizAttempt, error)
}

type quizService struct {
	log         *logger.Logger
	attemptRepo repos.QuizAttemptRepo
}

func NewQuizService(log *logger.Logger, attemptRepo repos.QuizAttemptRepo) QuizService {
	return &quizService{
		log:         log.With("service", "QuizService"),
		attemptRepo: attemptRepo,
	}
}

func (qs *quizService) SaveAttempt(ctx context.Context, userID string, score, totalQuestions, correctAnswers int, questions []types.Question) (*types.QuizAttempt, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	if totalQuestions <= 0 {
		return nil, apierr.BadRequest("invalid_attempt", fmt.Errorf("totalQuestions must be positive"))
	}
	if correctAnswers < 0 || correctAnswers > totalQuestions {
		return nil, apierr.BadRequest("invalid_attempt", fmt.Errorf("correctAnswers out of range"))
	}

	raw, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode attempt questions: %w", err)
	}

	attempt := &types.QuizAttempt{
		ID:             uuid.New(),
		UserID:         id,
		Score:          score,
		TotalQuestions: totalQuestions,
		CorrectAnswers: correctAnswers,
		Questions:      datatypes.JSON(raw),
	}
	created, err := qs.attemptRepo.Create(ctx, nil, attempt)
	if err != nil {
		return nil, fmt.Errorf("failed to save quiz attempt: %w", err)
	}
	qs.log.Info("Quiz attempt saved", "user_id", id, "score", score)
	return created, nil
}

func (qs *quizService) AttemptsForUser(ctx context.Context, userID string) ([]*types.QuizAttempt, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	attempts, err := qs.attemptRepo.GetByUserID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load quiz attempts: %w", err)
	}
	return attempts, nil
}
