package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/clients/openai"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/scoring"
	"github.com/quizforge/quizforge-backend/internal/types"
)

const generateSystemMessage = `You are a meticulous quiz author. The user message has these lines:
application name,
【application description】,
application category ("score" for graded quizzes, "test" for personality tests),
question count,
options per question.

Write that many multiple-choice questions for the application. Requirements:
1. Question wording must not leak the answer and must not repeat other questions.
2. Return a JSON array. Each element is an object of the form {"title": "question text", "options": [{"value": "option text", "key": "A", "score": 0, "result": ""}]}.
3. For scored applications fill "score" with a non-negative integer per option; for personality tests fill "result" with the trait code the option maps to.
4. Return the JSON array only, with no surrounding prose.`

// GeneratedQuestion is one AI-authored question as returned to the caller.
type GeneratedQuestion struct {
	Title   string                 `json:"title"`
	Options []types.QuestionOption `json:"options"`
}

// QuestionGenService authors quiz questions with the AI backend, either as a
// single JSON array or streamed question-by-question over a callback.
type QuestionGenService interface {
	Generate(ctx context.Context, appID uuid.UUID, questionCount, optionCount int) ([]GeneratedQuestion, error)
	GenerateStream(ctx context.Context, appID uuid.UUID, questionCount, optionCount int, onQuestion func(object string) error) error
}

type questionGenService struct {
	log     *logger.Logger
	appRepo repos.AppRepo
	ai      openai.Client
}

func NewQuestionGenService(log *logger.Logger, appRepo repos.AppRepo, ai openai.Client) QuestionGenService {
	return &questionGenService{
		log:     log.With("service", "QuestionGenService"),
		appRepo: appRepo,
		ai:      ai,
	}
}

func (s *questionGenService) Generate(ctx context.Context, appID uuid.UUID, questionCount, optionCount int) ([]GeneratedQuestion, error) {
	app, user, err := s.prepare(ctx, appID, questionCount, optionCount)
	if err != nil {
		return nil, err
	}

	text, err := s.ai.GenerateText(ctx, generateSystemMessage, user, openai.DefaultTemperature)
	if err != nil {
		return nil, apierr.System(fmt.Errorf("generate questions: %w", err))
	}

	raw := extractJSONArray(text)
	if raw == "" {
		return nil, apierr.System(fmt.Errorf("model response for app %s contains no JSON array", app.ID))
	}
	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, apierr.System(fmt.Errorf("parse generated questions: %w", err))
	}
	s.log.Info("Generated questions", "app_id", appID, "count", len(questions))
	return questions, nil
}

// GenerateStream invokes onQuestion once per complete question object, in
// stream order, while the model is still producing output. onQuestion runs
// on a single goroutine; returning an error from it aborts the stream.
func (s *questionGenService) GenerateStream(ctx context.Context, appID uuid.UUID, questionCount, optionCount int, onQuestion func(object string) error) error {
	_, user, err := s.prepare(ctx, appID, questionCount, optionCount)
	if err != nil {
		return err
	}

	deltas := make(chan string, 64)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(deltas)
		_, err := s.ai.StreamText(gctx, generateSystemMessage, user, openai.DefaultTemperature, func(delta string) {
			select {
			case deltas <- delta:
			case <-gctx.Done():
			}
		})
		if err != nil {
			return apierr.System(fmt.Errorf("stream questions: %w", err))
		}
		return nil
	})

	g.Go(func() error {
		extractor := scoring.NewObjectExtractor(onQuestion)
		for delta := range deltas {
			// Whitespace between tokens is noise to the brace scanner.
			delta = strings.Map(func(r rune) rune {
				switch r {
				case '\n', '\r', '\t':
					return -1
				}
				return r
			}, delta)
			if err := extractor.Feed(delta); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}

func (s *questionGenService) prepare(ctx context.Context, appID uuid.UUID, questionCount, optionCount int) (*types.App, string, error) {
	if questionCount <= 0 || optionCount <= 0 {
		return nil, "", apierr.Params(fmt.Errorf("question and option counts must be positive"))
	}
	app, err := s.appRepo.GetByID(ctx, nil, appID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, "", apierr.NotFound(fmt.Errorf("app %s not found", appID))
		}
		return nil, "", apierr.System(err)
	}
	user := fmt.Sprintf("%s,\n【%s】,\n%s,\n%d,\n%d", app.AppName, app.AppDesc, app.AppType.Label(), questionCount, optionCount)
	return app, user, nil
}

func extractJSONArray(text string) string {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return ""
	}
	return text[start : end+1]
}
