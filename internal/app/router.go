package app

import (
	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		HealthcheckHandler:   handlerset.Healthcheck,
		AppHandler:           handlerset.App,
		QuestionHandler:      handlerset.Question,
		ScoringResultHandler: handlerset.ScoringResult,
		UserAnswerHandler:    handlerset.UserAnswer,
		AllowOrigins:         cfg.AllowOrigins,
	})
}
