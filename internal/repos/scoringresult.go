package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type ScoringResultRepo interface {
	Create(ctx context.Context, tx *gorm.DB, result *types.ScoringResult) (*types.ScoringResult, error)
	GetByAppID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.ScoringResult, error)
	GetByAppIDOrdered(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.ScoringResult, error)
	Update(ctx context.Context, tx *gorm.DB, result *types.ScoringResult) error
	DeleteByID(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) error
}

type scoringResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScoringResultRepo(db *gorm.DB, baseLog *logger.Logger) ScoringResultRepo {
	return &scoringResultRepo{db: db, log: baseLog.With("repo", "ScoringResultRepo")}
}

func (r *scoringResultRepo) Create(ctx context.Context, tx *gorm.DB, result *types.ScoringResult) (*types.ScoringResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Create(result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

func (r *scoringResultRepo) GetByAppID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.ScoringResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ScoringResult
	if err := transaction.WithContext(ctx).
		Where("app_id = ?", appID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByAppIDOrdered returns the app's results sorted by descending score
// threshold, the order the score-type selection walks them in.
func (r *scoringResultRepo) GetByAppIDOrdered(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.ScoringResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ScoringResult
	if err := transaction.WithContext(ctx).
		Where("app_id = ?", appID).
		Order("result_score_range DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *scoringResultRepo) Update(ctx context.Context, tx *gorm.DB, result *types.ScoringResult) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).Save(result).Error
}

func (r *scoringResultRepo) DeleteByID(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Where("id = ?", resultID).
		Delete(&types.ScoringResult{}).Error
}
