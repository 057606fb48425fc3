package scoring

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/types"
)

func scoreTestFixture(t *testing.T) (*types.App, *fakeQuestionRepo, *fakeScoringResultRepo) {
	t.Helper()
	appID := uuid.New()
	app := &types.App{
		ID:            appID,
		AppName:       "IQ check",
		AppType:       types.AppTypeScore,
		ScoringMethod: types.ScoringMethodCustom,
	}
	questions := &fakeQuestionRepo{
		question: mustQuestion(t, appID, []types.QuestionContent{
			{Title: "Q1", Options: []types.QuestionOption{
				{Key: "A", Value: "right", Score: 50},
				{Key: "B", Value: "wrong", Score: 0},
			}},
			{Title: "Q2", Options: []types.QuestionOption{
				{Key: "A", Value: "right", Score: 25},
				{Key: "B", Value: "wrong", Score: 5},
			}},
			{Title: "Q3", Options: []types.QuestionOption{
				{Key: "A", Value: "right", Score: 25},
				{Key: "B", Value: "wrong", Score: 5},
			}},
		}),
	}
	// Thresholds descending, the way the repo returns them.
	results := &fakeScoringResultRepo{
		results: []*types.ScoringResult{
			{ID: uuid.New(), AppID: appID, ResultName: "genius", ResultScoreRange: 90},
			{ID: uuid.New(), AppID: appID, ResultName: "solid", ResultScoreRange: 70},
			{ID: uuid.New(), AppID: appID, ResultName: "novice", ResultScoreRange: 50},
		},
	}
	return app, questions, results
}

func TestScoreStrategySelectsFirstReachedThreshold(t *testing.T) {
	app, questions, results := scoreTestFixture(t)
	strategy := NewScoreStrategy(questions, results, testLogger(t))

	cases := []struct {
		name      string
		choices   []string
		wantName  string
		wantScore int
	}{
		{name: "all_right_hits_top_band", choices: []string{"A", "A", "A"}, wantName: "genius", wantScore: 100},
		{name: "mid_total_skips_top_band", choices: []string{"A", "A", "B"}, wantName: "solid", wantScore: 80},
		{name: "low_total_hits_lowest_band", choices: []string{"A", "B", "B"}, wantName: "novice", wantScore: 60},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			answer, err := strategy.Score(context.Background(), tc.choices, app)
			if err != nil {
				t.Fatalf("Score: %v", err)
			}
			if answer.ResultName != tc.wantName {
				t.Fatalf("ResultName = %q, want %q", answer.ResultName, tc.wantName)
			}
			if answer.ResultScore == nil || *answer.ResultScore != tc.wantScore {
				t.Fatalf("ResultScore = %v, want %d", answer.ResultScore, tc.wantScore)
			}
		})
	}
}

func TestScoreStrategyFallsBackToHighestBand(t *testing.T) {
	app, questions, results := scoreTestFixture(t)
	// Raise every threshold above any reachable total.
	for _, r := range results.results {
		r.ResultScoreRange += 1000
	}
	strategy := NewScoreStrategy(questions, results, testLogger(t))

	answer, err := strategy.Score(context.Background(), []string{"B", "B", "B"}, app)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if answer.ResultName != "genius" {
		t.Fatalf("ResultName = %q, want fallback %q", answer.ResultName, "genius")
	}
}

func TestScoreStrategyPreservesChoiceOrder(t *testing.T) {
	app, questions, results := scoreTestFixture(t)
	strategy := NewScoreStrategy(questions, results, testLogger(t))

	choices := []string{"B", "A", "B"}
	answer, err := strategy.Score(context.Background(), choices, app)
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	stored, err := answer.GetChoices()
	if err != nil {
		t.Fatalf("GetChoices: %v", err)
	}
	if len(stored) != len(choices) {
		t.Fatalf("stored %d choices, want %d", len(stored), len(choices))
	}
	for i := range choices {
		if stored[i] != choices[i] {
			t.Fatalf("choice %d = %q, want %q", i, stored[i], choices[i])
		}
	}
}

func TestScoreStrategyRejectsLengthMismatch(t *testing.T) {
	app, questions, results := scoreTestFixture(t)
	strategy := NewScoreStrategy(questions, results, testLogger(t))

	_, err := strategy.Score(context.Background(), []string{"A"}, app)
	if !apierr.Is(err, apierr.CodeParamsError) {
		t.Fatalf("err = %v, want PARAMS_ERROR", err)
	}
}

func TestScoreStrategyMissingQuestionnaire(t *testing.T) {
	app, _, results := scoreTestFixture(t)
	strategy := NewScoreStrategy(&fakeQuestionRepo{}, results, testLogger(t))

	_, err := strategy.Score(context.Background(), []string{"A", "A", "A"}, app)
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND_ERROR", err)
	}
}

func TestScoreStrategyNoResultsConfigured(t *testing.T) {
	app, questions, _ := scoreTestFixture(t)
	strategy := NewScoreStrategy(questions, &fakeScoringResultRepo{}, testLogger(t))

	_, err := strategy.Score(context.Background(), []string{"A", "A", "A"}, app)
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND_ERROR", err)
	}
}
