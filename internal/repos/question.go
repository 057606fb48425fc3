package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type QuestionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error)
	GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Question, error)
	GetByAppID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) (*types.Question, error)
	Update(ctx context.Context, tx *gorm.DB, question *types.Question) error
	DeleteByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(question).Error; err != nil {
		return nil, err
	}
	return question, nil
}

func (r *questionRepo) GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var question types.Question
	if err := transaction.WithContext(ctx).
		Where("id = ?", questionID).
		First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// GetByAppID returns the app's single questionnaire.
func (r *questionRepo) GetByAppID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) (*types.Question, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var question types.Question
	if err := transaction.WithContext(ctx).
		Where("app_id = ?", appID).
		First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepo) Update(ctx context.Context, tx *gorm.DB, question *types.Question) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(question).Error
}

func (r *questionRepo) DeleteByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", questionID).
		Delete(&types.Question{}).Error
}
