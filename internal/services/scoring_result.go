package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type ScoringResultService interface {
	Create(ctx context.Context, result *types.ScoringResult) (*types.ScoringResult, error)
	ListByAppID(ctx context.Context, appID uuid.UUID) ([]*types.ScoringResult, error)
	Update(ctx context.Context, result *types.ScoringResult) (*types.ScoringResult, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type scoringResultService struct {
	log        *logger.Logger
	resultRepo repos.ScoringResultRepo
	appRepo    repos.AppRepo
}

func NewScoringResultService(log *logger.Logger, resultRepo repos.ScoringResultRepo, appRepo repos.AppRepo) ScoringResultService {
	return &scoringResultService{
		log:        log.With("service", "ScoringResultService"),
		resultRepo: resultRepo,
		appRepo:    appRepo,
	}
}

func (s *scoringResultService) Create(ctx context.Context, result *types.ScoringResult) (*types.ScoringResult, error) {
	if err := s.validate(ctx, result); err != nil {
		return nil, err
	}
	created, err := s.resultRepo.Create(ctx, nil, result)
	if err != nil {
		return nil, apierr.System(fmt.Errorf("create scoring result: %w", err))
	}
	return created, nil
}

func (s *scoringResultService) ListByAppID(ctx context.Context, appID uuid.UUID) ([]*types.ScoringResult, error) {
	results, err := s.resultRepo.GetByAppID(ctx, nil, appID)
	if err != nil {
		return nil, apierr.System(err)
	}
	return results, nil
}

func (s *scoringResultService) Update(ctx context.Context, result *types.ScoringResult) (*types.ScoringResult, error) {
	if result.ID == uuid.Nil {
		return nil, apierr.Params(fmt.Errorf("scoring result id is required"))
	}
	if err := s.validate(ctx, result); err != nil {
		return nil, err
	}
	if err := s.resultRepo.Update(ctx, nil, result); err != nil {
		return nil, apierr.System(fmt.Errorf("update scoring result: %w", err))
	}
	return result, nil
}

func (s *scoringResultService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.resultRepo.DeleteByID(ctx, nil, id); err != nil {
		return apierr.System(fmt.Errorf("delete scoring result: %w", err))
	}
	return nil
}

func (s *scoringResultService) validate(ctx context.Context, result *types.ScoringResult) error {
	if result == nil {
		return apierr.Params(fmt.Errorf("scoring result is nil"))
	}
	if strings.TrimSpace(result.ResultName) == "" {
		return apierr.Params(fmt.Errorf("result name is empty"))
	}
	if result.AppID == uuid.Nil {
		return apierr.Params(fmt.Errorf("app id is required"))
	}
	if _, err := s.appRepo.GetByID(ctx, nil, result.AppID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apierr.NotFound(fmt.Errorf("app %s not found", result.AppID))
		}
		return apierr.System(err)
	}
	return nil
}
