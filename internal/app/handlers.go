package app

import (
	"github.com/quizforge/quizforge-backend/internal/handlers"
	"github.com/quizforge/quizforge-backend/internal/logger"
)

type Handlers struct {
	Healthcheck   *handlers.HealthcheckHandler
	App           *handlers.AppHandler
	Question      *handlers.QuestionHandler
	ScoringResult *handlers.ScoringResultHandler
	UserAnswer    *handlers.UserAnswerHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Healthcheck:   handlers.NewHealthcheckHandler(),
		App:           handlers.NewAppHandler(log, serviceset.App),
		Question:      handlers.NewQuestionHandler(log, serviceset.Question, serviceset.QuestionGen),
		ScoringResult: handlers.NewScoringResultHandler(log, serviceset.ScoringResult),
		UserAnswer:    handlers.NewUserAnswerHandler(log, serviceset.Scoring),
	}
}
