package app

import (
	"fmt"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/scoring"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type Services struct {
	App           services.AppService
	Question      services.QuestionService
	QuestionGen   services.QuestionGenService
	ScoringResult services.ScoringResultService
	Scoring       services.ScoringService
	Registry      *scoring.Registry
}

func wireServices(log *logger.Logger, clients Clients, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	flight := scoring.NewSingleFlight(clients.AnswerCache, clients.Locker, log)

	scoreStrategy := scoring.NewScoreStrategy(reposet.Question, reposet.ScoringResult, log)
	testStrategy := scoring.NewTestStrategy(reposet.Question, reposet.ScoringResult, log)
	aiStrategy := scoring.NewAIStrategy(reposet.Question, clients.AI, flight, log)

	// A duplicate registration is a wiring bug, fail startup loudly.
	registry, err := scoring.BuildRegistry(scoreStrategy, testStrategy, aiStrategy)
	if err != nil {
		return Services{}, fmt.Errorf("build strategy registry: %w", err)
	}

	return Services{
		App:           services.NewAppService(log, reposet.App),
		Question:      services.NewQuestionService(log, reposet.Question, reposet.App),
		QuestionGen:   services.NewQuestionGenService(log, reposet.App, clients.AI),
		ScoringResult: services.NewScoringResultService(log, reposet.ScoringResult, reposet.App),
		Scoring:       services.NewScoringService(log, reposet.App, reposet.UserAnswer, registry),
		Registry:      registry,
	}, nil
}
