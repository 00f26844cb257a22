package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/iamvtyagi/flashLearn/internal/apierr"
	"github.com/iamvtyagi/flashLearn/internal/logger"
	"github.com/iamvtyagi/flashLearn/internal/repos"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

type UserService interface {
	Profile(ctx context.Context, userID string) (*types.User, error)
	UpdateQuizStats(ctx context.Context, email string, score int) (*types.User, error)
	Leaderboard(ctx context.Context, limit int) ([]*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) Profile(ctx context.Context, userID string) (*types.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	user, err := us.userRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user not found"))
	}
	return user, nil
}

// UpdateQuizStats adds one completed quiz and the achieved score to the
// user's running totals. Counters only ever grow; submitting the same quiz
// twice counts twice.
func (us *userService) UpdateQuizStats(ctx context.Context, email string, score int) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := us.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user_not_found", fmt.Errorf("user not found"))
	}

	if err := us.userRepo.AddQuizStats(ctx, nil, user.ID, score); err != nil {
		return nil, fmt.Errorf("failed to update quiz stats: %w", err)
	}

	updated, err := us.userRepo.GetByID(ctx, nil, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	us.log.Info("Quiz stats updated", "user_id", user.ID, "score", score)
	return updated, nil
}

func parseUserID(userID string) (uuid.UUID, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, apierr.BadRequest("invalid_user_id", fmt.Errorf("invalid user id"))
	}
	return id, nil
}

func (us *userService) Leaderboard(ctx context.Context, limit int) ([]*types.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	users, err := us.userRepo.TopByScore(ctx, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return users, nil
}
