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

type AppService interface {
	Create(ctx context.Context, app *types.App) (*types.App, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.App, error)
	List(ctx context.Context, limit int) ([]*types.App, error)
	Update(ctx context.Context, app *types.App) (*types.App, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type appService struct {
	log     *logger.Logger
	appRepo repos.AppRepo
}

func NewAppService(log *logger.Logger, appRepo repos.AppRepo) AppService {
	return &appService{
		log:     log.With("service", "AppService"),
		appRepo: appRepo,
	}
}

func (s *appService) Create(ctx context.Context, app *types.App) (*types.App, error) {
	if err := validateApp(app); err != nil {
		return nil, err
	}
	created, err := s.appRepo.Create(ctx, nil, app)
	if err != nil {
		return nil, apierr.System(fmt.Errorf("create app: %w", err))
	}
	s.log.Info("Created app", "app_id", created.ID, "app_type", created.AppType.Label())
	return created, nil
}

func (s *appService) GetByID(ctx context.Context, id uuid.UUID) (*types.App, error) {
	app, err := s.appRepo.GetByID(ctx, nil, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apierr.NotFound(fmt.Errorf("app %s not found", id))
		}
		return nil, apierr.System(err)
	}
	return app, nil
}

func (s *appService) List(ctx context.Context, limit int) ([]*types.App, error) {
	apps, err := s.appRepo.List(ctx, nil, limit)
	if err != nil {
		return nil, apierr.System(err)
	}
	return apps, nil
}

func (s *appService) Update(ctx context.Context, app *types.App) (*types.App, error) {
	if app.ID == uuid.Nil {
		return nil, apierr.Params(fmt.Errorf("app id is required"))
	}
	if err := validateApp(app); err != nil {
		return nil, err
	}
	if _, err := s.appRepo.GetByID(ctx, nil, app.ID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apierr.NotFound(fmt.Errorf("app %s not found", app.ID))
		}
		return nil, apierr.System(err)
	}
	if err := s.appRepo.Update(ctx, nil, app); err != nil {
		return nil, apierr.System(fmt.Errorf("update app: %w", err))
	}
	return app, nil
}

func (s *appService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.appRepo.DeleteByID(ctx, nil, id); err != nil {
		return apierr.System(fmt.Errorf("delete app: %w", err))
	}
	return nil
}

func validateApp(app *types.App) error {
	if app == nil {
		return apierr.Params(fmt.Errorf("app is nil"))
	}
	if strings.TrimSpace(app.AppName) == "" {
		return apierr.Params(fmt.Errorf("app name is empty"))
	}
	if !app.AppType.Valid() {
		return apierr.Params(fmt.Errorf("unknown app type %d", app.AppType))
	}
	if !app.ScoringMethod.Valid() {
		return apierr.Params(fmt.Errorf("unknown scoring method %d", app.ScoringMethod))
	}
	return nil
}
