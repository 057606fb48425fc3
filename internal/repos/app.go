package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type AppRepo interface {
	Create(ctx context.Context, tx *gorm.DB, app *types.App) (*types.App, error)
	GetByID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) (*types.App, error)
	List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.App, error)
	Update(ctx context.Context, tx *gorm.DB, app *types.App) error
	DeleteByID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) error
}

type appRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAppRepo(db *gorm.DB, baseLog *logger.Logger) AppRepo {
	return &appRepo{db: db, log: baseLog.With("repo", "AppRepo")}
}

func (r *appRepo) Create(ctx context.Context, tx *gorm.DB, app *types.App) (*types.App, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

func (r *appRepo) GetByID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) (*types.App, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var app types.App
	if err := transaction.WithContext(ctx).
		Where("id = ?", appID).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *appRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.App, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var results []*types.App
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *appRepo) Update(ctx context.Context, tx *gorm.DB, app *types.App) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(app).Error
}

func (r *appRepo) DeleteByID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", appID).
		Delete(&types.App{}).Error
}
