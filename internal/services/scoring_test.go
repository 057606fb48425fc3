package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/scoring"
	"github.com/quizforge/quizforge-backend/internal/types"
)

var errTest = errors.New("test error")

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

type fakeAppRepo struct {
	apps map[uuid.UUID]*types.App
}

func (f *fakeAppRepo) Create(ctx context.Context, tx *gorm.DB, app *types.App) (*types.App, error) {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	f.apps[app.ID] = app
	return app, nil
}

func (f *fakeAppRepo) GetByID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) (*types.App, error) {
	app, ok := f.apps[appID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return app, nil
}

func (f *fakeAppRepo) List(ctx context.Context, tx *gorm.DB, limit int) ([]*types.App, error) {
	apps := make([]*types.App, 0, len(f.apps))
	for _, app := range f.apps {
		apps = append(apps, app)
	}
	return apps, nil
}

func (f *fakeAppRepo) Update(ctx context.Context, tx *gorm.DB, app *types.App) error {
	f.apps[app.ID] = app
	return nil
}

func (f *fakeAppRepo) DeleteByID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) error {
	delete(f.apps, appID)
	return nil
}

type fakeUserAnswerRepo struct {
	created []*types.UserAnswer
}

func (f *fakeUserAnswerRepo) Create(ctx context.Context, tx *gorm.DB, answer *types.UserAnswer) (*types.UserAnswer, error) {
	if answer.ID == uuid.Nil {
		answer.ID = uuid.New()
	}
	f.created = append(f.created, answer)
	return answer, nil
}

func (f *fakeUserAnswerRepo) GetByID(ctx context.Context, tx *gorm.DB, answerID uuid.UUID) (*types.UserAnswer, error) {
	for _, answer := range f.created {
		if answer.ID == answerID {
			return answer, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserAnswerRepo) ListByAppID(ctx context.Context, tx *gorm.DB, appID uuid.UUID, limit int) ([]*types.UserAnswer, error) {
	var answers []*types.UserAnswer
	for _, answer := range f.created {
		if answer.AppID == appID {
			answers = append(answers, answer)
		}
	}
	return answers, nil
}

type stubStrategy struct {
	answer *types.UserAnswer
	err    error
	calls  int
}

func (s *stubStrategy) Score(ctx context.Context, choices []string, app *types.App) (*types.UserAnswer, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	answer := *s.answer
	answer.AppID = app.ID
	return &answer, nil
}

func submitFixture(t *testing.T, strategy scoring.Strategy) (ScoringService, *types.App, *fakeUserAnswerRepo) {
	t.Helper()
	app := &types.App{
		ID:            uuid.New(),
		AppName:       "quiz",
		AppType:       types.AppTypeScore,
		ScoringMethod: types.ScoringMethodCustom,
	}
	appRepo := &fakeAppRepo{apps: map[uuid.UUID]*types.App{app.ID: app}}
	answerRepo := &fakeUserAnswerRepo{}

	registry := scoring.NewRegistry()
	key := scoring.Key{AppType: app.AppType, Method: app.ScoringMethod}
	if err := registry.Register(key, strategy); err != nil {
		t.Fatalf("register strategy: %v", err)
	}
	return NewScoringService(testLogger(t), appRepo, answerRepo, registry), app, answerRepo
}

func TestScoringServiceSubmitPersistsScoredAnswer(t *testing.T) {
	strategy := &stubStrategy{answer: &types.UserAnswer{ResultName: "winner"}}
	svc, app, answerRepo := submitFixture(t, strategy)

	answer, err := svc.Submit(context.Background(), app.ID, []string{"A", "B"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if answer.ResultName != "winner" {
		t.Fatalf("ResultName = %q, want %q", answer.ResultName, "winner")
	}
	if strategy.calls != 1 {
		t.Fatalf("strategy called %d times, want 1", strategy.calls)
	}
	if len(answerRepo.created) != 1 {
		t.Fatalf("persisted %d answers, want 1", len(answerRepo.created))
	}
}

func TestScoringServiceSubmitValidatesParams(t *testing.T) {
	svc, app, _ := submitFixture(t, &stubStrategy{answer: &types.UserAnswer{}})

	if _, err := svc.Submit(context.Background(), uuid.Nil, []string{"A"}); !apierr.Is(err, apierr.CodeParamsError) {
		t.Fatalf("nil app id: err = %v, want PARAMS_ERROR", err)
	}
	if _, err := svc.Submit(context.Background(), app.ID, nil); !apierr.Is(err, apierr.CodeParamsError) {
		t.Fatalf("empty choices: err = %v, want PARAMS_ERROR", err)
	}
}

func TestScoringServiceSubmitUnknownAppIsNotFound(t *testing.T) {
	svc, _, _ := submitFixture(t, &stubStrategy{answer: &types.UserAnswer{}})

	_, err := svc.Submit(context.Background(), uuid.New(), []string{"A"})
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND_ERROR", err)
	}
}

func TestScoringServiceSubmitStrategyErrorNotPersisted(t *testing.T) {
	strategy := &stubStrategy{err: apierr.LockUnavailable(errTest)}
	svc, app, answerRepo := submitFixture(t, strategy)

	_, err := svc.Submit(context.Background(), app.ID, []string{"A"})
	if !apierr.Is(err, apierr.CodeLockUnavailable) {
		t.Fatalf("err = %v, want LOCK_UNAVAILABLE", err)
	}
	if len(answerRepo.created) != 0 {
		t.Fatalf("persisted %d answers after strategy failure, want 0", len(answerRepo.created))
	}
}

func TestScoringServiceSubmitUnregisteredComboIsNotFound(t *testing.T) {
	app := &types.App{
		ID:            uuid.New(),
		AppName:       "quiz",
		AppType:       types.AppTypeTest,
		ScoringMethod: types.ScoringMethodAI,
	}
	appRepo := &fakeAppRepo{apps: map[uuid.UUID]*types.App{app.ID: app}}
	svc := NewScoringService(testLogger(t), appRepo, &fakeUserAnswerRepo{}, scoring.NewRegistry())

	_, err := svc.Submit(context.Background(), app.ID, []string{"A"})
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND_ERROR", err)
	}
}
