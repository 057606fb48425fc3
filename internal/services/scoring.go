package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/scoring"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// ScoringService turns a submitted choice list into a persisted, scored
// answer. The strategy that runs is picked by the app's type and scoring
// method; the service itself knows nothing about how scores are computed.
type ScoringService interface {
	Submit(ctx context.Context, appID uuid.UUID, choices []string) (*types.UserAnswer, error)
	GetAnswer(ctx context.Context, id uuid.UUID) (*types.UserAnswer, error)
	ListAnswers(ctx context.Context, appID uuid.UUID, limit int) ([]*types.UserAnswer, error)
}

type scoringService struct {
	log        *logger.Logger
	appRepo    repos.AppRepo
	answerRepo repos.UserAnswerRepo
	registry   *scoring.Registry
}

func NewScoringService(log *logger.Logger, appRepo repos.AppRepo, answerRepo repos.UserAnswerRepo, registry *scoring.Registry) ScoringService {
	return &scoringService{
		log:        log.With("service", "ScoringService"),
		appRepo:    appRepo,
		answerRepo: answerRepo,
		registry:   registry,
	}
}

func (s *scoringService) Submit(ctx context.Context, appID uuid.UUID, choices []string) (*types.UserAnswer, error) {
	if appID == uuid.Nil {
		return nil, apierr.Params(fmt.Errorf("app id is required"))
	}
	if len(choices) == 0 {
		return nil, apierr.Params(fmt.Errorf("choices are empty"))
	}

	app, err := s.appRepo.GetByID(ctx, nil, appID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apierr.NotFound(fmt.Errorf("app %s not found", appID))
		}
		return nil, apierr.System(err)
	}

	strategy, err := s.registry.Resolve(app.AppType, app.ScoringMethod)
	if err != nil {
		return nil, err
	}

	answer, err := strategy.Score(ctx, choices, app)
	if err != nil {
		return nil, err
	}

	created, err := s.answerRepo.Create(ctx, nil, answer)
	if err != nil {
		return nil, apierr.System(fmt.Errorf("persist answer: %w", err))
	}
	s.log.Info("Scored submission",
		"app_id", appID,
		"app_type", app.AppType.Label(),
		"result_name", created.ResultName)
	return created, nil
}

func (s *scoringService) GetAnswer(ctx context.Context, id uuid.UUID) (*types.UserAnswer, error) {
	answer, err := s.answerRepo.GetByID(ctx, nil, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apierr.NotFound(fmt.Errorf("answer %s not found", id))
		}
		return nil, apierr.System(err)
	}
	return answer, nil
}

func (s *scoringService) ListAnswers(ctx context.Context, appID uuid.UUID, limit int) ([]*types.UserAnswer, error) {
	answers, err := s.answerRepo.ListByAppID(ctx, nil, appID, limit)
	if err != nil {
		return nil, apierr.System(err)
	}
	return answers, nil
}
