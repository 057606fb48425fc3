package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/clients/openai"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/types"
)

const answerSystemMessage = `You are a rigorous evaluation expert. You will receive:
the application name,
the application description,
and the list of questions with the user's answers, formatted as [{"title": "question", "userAnswer": "answer"}].

Based on that information, evaluate the user as follows:
1. Produce a clear evaluation with a name (as short as possible) and a description (detailed, around 200 words).
2. Output the evaluation name and description strictly in this JSON format:
{"resultName": "evaluation name", "resultDesc": "evaluation description"}
3. The response must be a single JSON object.`

type questionAnswer struct {
	Title      string `json:"title"`
	UserAnswer string `json:"userAnswer"`
}

type aiResult struct {
	ResultName string `json:"resultName"`
	ResultDesc string `json:"resultDesc"`
}

// AIStrategy asks the model backend to evaluate a submission. Identical
// submissions are deduplicated through the single-flight cache so a burst of
// equal requests costs one model call.
type AIStrategy struct {
	questions repos.QuestionRepo
	ai        openai.Client
	flight    *SingleFlight
	log       *logger.Logger
}

func NewAIStrategy(questions repos.QuestionRepo, ai openai.Client, flight *SingleFlight, log *logger.Logger) *AIStrategy {
	return &AIStrategy{
		questions: questions,
		ai:        ai,
		flight:    flight,
		log:       log.With("strategy", "AIStrategy"),
	}
}

func (s *AIStrategy) Score(ctx context.Context, choices []string, app *types.App) (*types.UserAnswer, error) {
	key := CacheKey(app.ID, choices)

	raw, err := s.flight.Do(ctx, key, func(ctx context.Context) (string, error) {
		return s.evaluate(ctx, choices, app)
	})
	if err != nil {
		return nil, err
	}

	var result aiResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, apierr.System(fmt.Errorf("parse model result: %w", err))
	}

	answer := &types.UserAnswer{
		AppID:         app.ID,
		AppType:       app.AppType,
		ScoringMethod: app.ScoringMethod,
		ResultName:    result.ResultName,
		ResultDesc:    result.ResultDesc,
	}
	if err := answer.SetChoices(choices); err != nil {
		return nil, apierr.System(err)
	}
	return answer, nil
}

// evaluate runs the actual model call on the single-flight miss path and
// returns the extracted JSON payload that gets cached.
func (s *AIStrategy) evaluate(ctx context.Context, choices []string, app *types.App) (string, error) {
	question, err := s.questions.GetByAppID(ctx, nil, app.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apierr.NotFound(fmt.Errorf("question for app %s not found", app.ID))
		}
		return "", apierr.System(err)
	}

	content, err := question.DecodeContent()
	if err != nil {
		return "", apierr.System(fmt.Errorf("decode question content: %w", err))
	}
	if len(choices) != len(content) {
		return "", apierr.Params(fmt.Errorf("expected %d answers, got %d", len(content), len(choices)))
	}

	pairs := make([]questionAnswer, 0, len(content))
	for i, qc := range content {
		for _, opt := range qc.Options {
			if opt.Key == choices[i] {
				pairs = append(pairs, questionAnswer{Title: qc.Title, UserAnswer: opt.Value})
				break
			}
		}
	}

	userMessage, err := buildAnswerUserMessage(app, pairs)
	if err != nil {
		return "", apierr.System(err)
	}

	text, err := s.ai.GenerateText(ctx, answerSystemMessage, userMessage, openai.StableTemperature)
	if err != nil {
		return "", apierr.System(fmt.Errorf("model call: %w", err))
	}
	s.log.Debug("Model evaluation received", "app_id", app.ID, "length", len(text))

	payload := extractJSONObject(text)
	if payload == "" {
		return "", apierr.System(fmt.Errorf("no JSON object in model response"))
	}
	return payload, nil
}

func buildAnswerUserMessage(app *types.App, pairs []questionAnswer) (string, error) {
	pairsJSON, err := json.Marshal(pairs)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(app.AppName)
	b.WriteString("\n")
	b.WriteString(app.AppDesc)
	b.WriteString("\n")
	b.Write(pairsJSON)
	return b.String(), nil
}

// extractJSONObject cuts the substring from the first '{' to the last '}',
// tolerating explanatory prose around the payload.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}
