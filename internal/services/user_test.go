package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/iamvtyagi/flashLearn/internal/apierr"
	"github.com/iamvtyagi/flashLearn/internal/logger"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

func seedUser(repo *fakeUserRepo, email string, score int) *types.User {
	u := &types.User{
		ID:         uuid.New(),
		FirstName:  "Test",
		Email:      email,
		TotalScore: score,
	}
	repo.users[u.ID] = u
	return u
}

func TestUpdateQuizStatsIsAdditive(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "alice@example.com", 0)
	us := NewUserService(logger.NewNop(), repo)

	first, err := us.UpdateQuizStats(context.Background(), "alice@example.com", 7)
	if err != nil {
		t.Fatalf("UpdateQuizStats: %v", err)
	}
	if first.TotalQuizzes != 1 || first.TotalScore != 7 {
		t.Fatalf("after first: want=(1,7) got=(%d,%d)", first.TotalQuizzes, first.TotalScore)
	}

	// Same submission again counts again; the counters never dedup.
	second, err := us.UpdateQuizStats(context.Background(), "Alice@Example.com", 7)
	if err != nil {
		t.Fatalf("UpdateQuizStats: %v", err)
	}
	if second.TotalQuizzes != 2 || second.TotalScore != 14 {
		t.Fatalf("after second: want=(2,14) got=(%d,%d)", second.TotalQuizzes, second.TotalScore)
	}
}

func TestUpdateQuizStatsUnknownUser(t *testing.T) {
	us := NewUserService(logger.NewNop(), newFakeUserRepo())
	_, err := us.UpdateQuizStats(context.Background(), "ghost@example.com", 5)
	var aerr *apierr.Error
	if !errors.As(err, &aerr) || aerr.Status != 404 {
		t.Fatalf("want 404 apierr, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	repo := newFakeUserRepo()
	u := seedUser(repo, "alice@example.com", 3)
	us := NewUserService(logger.NewNop(), repo)

	got, err := us.Profile(context.Background(), u.ID.String())
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.Email != u.Email {
		t.Fatalf("email: want=%q got=%q", u.Email, got.Email)
	}

	_, err = us.Profile(context.Background(), uuid.NewString())
	var aerr *apierr.Error
	if !errors.As(err, &aerr) || aerr.Status != 404 {
		t.Fatalf("unknown id: want 404, got %v", err)
	}

	_, err = us.Profile(context.Background(), "not-a-uuid")
	if !errors.As(err, &aerr) || aerr.Status != 400 {
		t.Fatalf("bad id: want 400, got %v", err)
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(repo, "low@example.com", 5)
	high := seedUser(repo, "high@example.com", 50)
	seedUser(repo, "mid@example.com", 20)
	us := NewUserService(logger.NewNop(), repo)

	users, err := us.Leaderboard(context.Background(), 2)
	if err != nil {
		t.Fatalf("Leaderboard: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len: want=2 got=%d", len(users))
	}
	if users[0].ID != high.ID {
		t.Fatalf("top user: want=%s got=%s", high.Email, users[0].Email)
	}
}
