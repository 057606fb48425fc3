package scoring

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// TestStrategy tallies the trait code of every chosen option, scores each
// result as the sum of its trait counters, and picks the strictly highest
// score. Ties keep the first-encountered result.
type TestStrategy struct {
	questions repos.QuestionRepo
	results   repos.ScoringResultRepo
	log       *logger.Logger
}

func NewTestStrategy(questions repos.QuestionRepo, results repos.ScoringResultRepo, log *logger.Logger) *TestStrategy {
	return &TestStrategy{
		questions: questions,
		results:   results,
		log:       log.With("strategy", "TestStrategy"),
	}
}

func (s *TestStrategy) Score(ctx context.Context, choices []string, app *types.App) (*types.UserAnswer, error) {
	question, err := s.questions.GetByAppID(ctx, nil, app.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("question for app %s not found", app.ID))
		}
		return nil, apierr.System(err)
	}

	content, err := question.DecodeContent()
	if err != nil {
		return nil, apierr.System(fmt.Errorf("decode question content: %w", err))
	}
	if len(choices) != len(content) {
		return nil, apierr.Params(fmt.Errorf("expected %d answers, got %d", len(content), len(choices)))
	}

	results, err := s.results.GetByAppID(ctx, nil, app.ID)
	if err != nil {
		return nil, apierr.System(err)
	}
	if len(results) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("no scoring results for app %s", app.ID))
	}

	traitCount := make(map[string]int)
	for i, qc := range content {
		for _, opt := range qc.Options {
			if opt.Key == choices[i] && opt.Result != "" {
				traitCount[opt.Result]++
				break
			}
		}
	}

	maxScore := 0
	selected := results[0]
	for _, result := range results {
		props, err := result.Props()
		if err != nil {
			return nil, apierr.System(fmt.Errorf("decode result props: %w", err))
		}
		score := 0
		for _, prop := range props {
			score += traitCount[prop]
		}
		// Strict comparison: equal scores keep the earlier result.
		if score > maxScore {
			maxScore = score
			selected = result
		}
	}

	answer := &types.UserAnswer{
		AppID:         app.ID,
		AppType:       app.AppType,
		ScoringMethod: app.ScoringMethod,
		ResultID:      &selected.ID,
		ResultName:    selected.ResultName,
		ResultDesc:    selected.ResultDesc,
		ResultPicture: selected.ResultPicture,
	}
	if err := answer.SetChoices(choices); err != nil {
		return nil, apierr.System(err)
	}
	return answer, nil
}
