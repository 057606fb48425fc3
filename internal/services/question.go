package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type QuestionService interface {
	Create(ctx context.Context, question *types.Question) (*types.Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Question, error)
	GetByAppID(ctx context.Context, appID uuid.UUID) (*types.Question, error)
	Update(ctx context.Context, question *types.Question) (*types.Question, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type questionService struct {
	log          *logger.Logger
	questionRepo repos.QuestionRepo
	appRepo      repos.AppRepo
}

func NewQuestionService(log *logger.Logger, questionRepo repos.QuestionRepo, appRepo repos.AppRepo) QuestionService {
	return &questionService{
		log:          log.With("service", "QuestionService"),
		questionRepo: questionRepo,
		appRepo:      appRepo,
	}
}

func (s *questionService) Create(ctx context.Context, question *types.Question) (*types.Question, error) {
	if err := s.validate(ctx, question); err != nil {
		return nil, err
	}
	created, err := s.questionRepo.Create(ctx, nil, question)
	if err != nil {
		return nil, apierr.System(fmt.Errorf("create question: %w", err))
	}
	return created, nil
}

func (s *questionService) GetByID(ctx context.Context, id uuid.UUID) (*types.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, nil, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apierr.NotFound(fmt.Errorf("question %s not found", id))
		}
		return nil, apierr.System(err)
	}
	return question, nil
}

func (s *questionService) GetByAppID(ctx context.Context, appID uuid.UUID) (*types.Question, error) {
	question, err := s.questionRepo.GetByAppID(ctx, nil, appID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apierr.NotFound(fmt.Errorf("app %s has no questionnaire", appID))
		}
		return nil, apierr.System(err)
	}
	return question, nil
}

func (s *questionService) Update(ctx context.Context, question *types.Question) (*types.Question, error) {
	if question.ID == uuid.Nil {
		return nil, apierr.Params(fmt.Errorf("question id is required"))
	}
	if err := s.validate(ctx, question); err != nil {
		return nil, err
	}
	if err := s.questionRepo.Update(ctx, nil, question); err != nil {
		return nil, apierr.System(fmt.Errorf("update question: %w", err))
	}
	return question, nil
}

func (s *questionService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.questionRepo.DeleteByID(ctx, nil, id); err != nil {
		return apierr.System(fmt.Errorf("delete question: %w", err))
	}
	return nil
}

// validate checks the linked app exists and the stored content decodes.
func (s *questionService) validate(ctx context.Context, question *types.Question) error {
	if question == nil {
		return apierr.Params(fmt.Errorf("question is nil"))
	}
	if question.AppID == uuid.Nil {
		return apierr.Params(fmt.Errorf("app id is required"))
	}
	if _, err := s.appRepo.GetByID(ctx, nil, question.AppID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apierr.NotFound(fmt.Errorf("app %s not found", question.AppID))
		}
		return apierr.System(err)
	}
	if _, err := question.DecodeContent(); err != nil {
		return apierr.Params(fmt.Errorf("malformed question content: %w", err))
	}
	return nil
}
