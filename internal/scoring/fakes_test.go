package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
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

type fakeQuestionRepo struct {
	question *types.Question
	err      error
}

func (f *fakeQuestionRepo) Create(ctx context.Context, tx *gorm.DB, question *types.Question) (*types.Question, error) {
	return question, nil
}

func (f *fakeQuestionRepo) GetByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) (*types.Question, error) {
	if f.question == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.question, f.err
}

func (f *fakeQuestionRepo) GetByAppID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) (*types.Question, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.question == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.question, nil
}

func (f *fakeQuestionRepo) Update(ctx context.Context, tx *gorm.DB, question *types.Question) error {
	return nil
}

func (f *fakeQuestionRepo) DeleteByID(ctx context.Context, tx *gorm.DB, questionID uuid.UUID) error {
	return nil
}

type fakeScoringResultRepo struct {
	results []*types.ScoringResult
	err     error
}

func (f *fakeScoringResultRepo) Create(ctx context.Context, tx *gorm.DB, result *types.ScoringResult) (*types.ScoringResult, error) {
	return result, nil
}

func (f *fakeScoringResultRepo) GetByAppID(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.ScoringResult, error) {
	return f.results, f.err
}

func (f *fakeScoringResultRepo) GetByAppIDOrdered(ctx context.Context, tx *gorm.DB, appID uuid.UUID) ([]*types.ScoringResult, error) {
	return f.results, f.err
}

func (f *fakeScoringResultRepo) Update(ctx context.Context, tx *gorm.DB, result *types.ScoringResult) error {
	return nil
}

func (f *fakeScoringResultRepo) DeleteByID(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) error {
	return nil
}

// fakeAIClient records calls and plays back a canned response.
type fakeAIClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeAIClient) GenerateText(ctx context.Context, system string, user string, temperature float64) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeAIClient) StreamText(ctx context.Context, system string, user string, temperature float64, onDelta func(delta string)) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	onDelta(f.response)
	return f.response, nil
}

func mustQuestion(t *testing.T, appID uuid.UUID, content []types.QuestionContent) *types.Question {
	t.Helper()
	q := &types.Question{ID: uuid.New(), AppID: appID}
	if err := q.EncodeContent(content); err != nil {
		t.Fatalf("encode question content: %v", err)
	}
	return q
}
