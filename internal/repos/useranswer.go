package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type UserAnswerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, answer *types.UserAnswer) (*types.UserAnswer, error)
	GetByID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (*types.UserAnswer, error)
	ListByAppID(ctx context.Context, tx *gorm.DB, appID uuid.UUID, limit int) ([]*types.UserAnswer, error)
}

type userAnswerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserAnswerRepo(db *gorm.DB, baseLog *logger.Logger) UserAnswerRepo {
	return &userAnswerRepo{db: db, log: baseLog.With("repo", "UserAnswerRepo")}
}

func (r *userAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answer *types.UserAnswer) (*types.UserAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

func (r *userAnswerRepo) GetByID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (*types.UserAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var answer types.UserAnswer
	if err := transaction.WithContext(ctx).
		Where("id = ?", answerID).
		First(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (r *userAnswerRepo) ListByAppID(ctx context.Context, tx *gorm.DB, appID uuid.UUID, limit int) ([]*types.UserAnswer, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var results []*types.UserAnswer
	if err := transaction.WithContext(ctx).
		Where("app_id = ?", appID).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
