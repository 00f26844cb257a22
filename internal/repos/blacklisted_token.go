package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iamvtyagi/flashLearn/internal/logger"
	"github.com/iamvtyagi/flashLearn/internal/types"
)

type BlacklistedTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token string) error
	Exists(ctx context.Context, tx *gorm.DB, token string) (bool, error)
}

type blacklistedTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBlacklistedTokenRepo(db *gorm.DB, baseLog *logger.Logger) BlacklistedTokenRepo {
	return &blacklistedTokenRepo{db: db, log: baseLog.With("repo", "BlacklistedTokenRepo")}
}

func (r *blacklistedTokenRepo) handle(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *blacklistedTokenRepo) Create(ctx context.Context, tx *gorm.DB, token string) error {
	return r.handle(tx).WithContext(ctx).Create(&types.BlacklistedToken{
		ID:    uuid.New(),
		Token: token,
	}).Error
}

func (r *blacklistedTokenRepo) Exists(ctx context.Context, tx *gorm.DB, token string) (bool, error) {
	var count int64
	if err := r.handle(tx).WithContext(ctx).
		Model(&types.BlacklistedToken{}).
		Where("token = ?", token).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
