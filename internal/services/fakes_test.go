package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iamvtyagi/flashLearn/internal/types"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*types.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
}

func (r *fakeUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.User) (*types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return user, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	u, _ := r.GetByEmail(ctx, tx, email)
	return u != nil, nil
}

func (r *fakeUserRepo) AddQuizStats(ctx context.Context, tx *gorm.DB, userID uuid.UUID, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.TotalQuizzes++
		u.TotalScore += score
	}
	return nil
}

func (r *fakeUserRepo) TopByScore(ctx context.Context, tx *gorm.DB, limit int) ([]*types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*types.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]bool
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]bool{}}
}

func (r *fakeTokenRepo) Create(ctx context.Context, tx *gorm.DB, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = true
	return nil
}

func (r *fakeTokenRepo) Exists(ctx context.Context, tx *gorm.DB, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokens[token], nil
}

type fakeAttemptRepo struct {
	mu       sync.Mutex
	attempts []*types.QuizAttempt
}

func (r *fakeAttemptRepo) Create(ctx context.Context, tx *gorm.DB, attempt *types.QuizAttempt) (*types.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts = append(r.attempts, attempt)
	return attempt, nil
}

func (r *fakeAttemptRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.QuizAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*types.QuizAttempt
	for _, a := range r.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}
