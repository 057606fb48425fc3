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

// ScoreStrategy sums the numeric score of every chosen option and selects
// the first result (walking thresholds in descending order) whose threshold
// the total reaches. When the total is below every threshold the
// highest-threshold result is used as fallback.
type ScoreStrategy struct {
	questions repos.QuestionRepo
	results   repos.ScoringResultRepo
	log       *logger.Logger
}

func NewScoreStrategy(questions repos.QuestionRepo, results repos.ScoringResultRepo, log *logger.Logger) *ScoreStrategy {
	return &ScoreStrategy{
		questions: questions,
		results:   results,
		log:       log.With("strategy", "ScoreStrategy"),
	}
}

func (s *ScoreStrategy) Score(ctx context.Context, choices []string, app *types.App) (*types.UserAnswer, error) {
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

	results, err := s.results.GetByAppIDOrdered(ctx, nil, app.ID)
	if err != nil {
		return nil, apierr.System(err)
	}
	if len(results) == 0 {
		return nil, apierr.NotFound(fmt.Errorf("no scoring results for app %s", app.ID))
	}

	total := 0
	for i, qc := range content {
		for _, opt := range qc.Options {
			if opt.Key == choices[i] {
				total += opt.Score
				break
			}
		}
	}

	// Results arrive sorted by descending threshold; the highest band is the
	// fallback when the total is below every threshold.
	selected := results[0]
	for _, result := range results {
		if total >= result.ResultScoreRange {
			selected = result
			break
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
		ResultScore:   &total,
	}
	if err := answer.SetChoices(choices); err != nil {
		return nil, apierr.System(err)
	}
	return answer, nil
}
