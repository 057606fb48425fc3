package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/handlers"
)

type RouterConfig struct {
	HealthcheckHandler   *handlers.HealthcheckHandler
	AppHandler           *handlers.AppHandler
	QuestionHandler      *handlers.QuestionHandler
	ScoringResultHandler *handlers.ScoringResultHandler
	UserAnswerHandler    *handlers.UserAnswerHandler
	AllowOrigins         []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)

	api := router.Group("/api")

	// App
	api.POST("/app", cfg.AppHandler.Create)
	api.GET("/app", cfg.AppHandler.List)
	api.GET("/app/:id", cfg.AppHandler.GetByID)
	api.PUT("/app/:id", cfg.AppHandler.Update)
	api.DELETE("/app/:id", cfg.AppHandler.Delete)

	// Question
	api.POST("/question", cfg.QuestionHandler.Create)
	api.GET("/question/app/:appId", cfg.QuestionHandler.GetByAppID)
	api.POST("/question/ai_generate", cfg.QuestionHandler.AIGenerate)
	api.GET("/question/ai_generate/sse", cfg.QuestionHandler.AIGenerateSSE)
	api.GET("/question/:id", cfg.QuestionHandler.GetByID)
	api.PUT("/question/:id", cfg.QuestionHandler.Update)
	api.DELETE("/question/:id", cfg.QuestionHandler.Delete)

	// Scoring results
	api.POST("/scoringResult", cfg.ScoringResultHandler.Create)
	api.GET("/scoringResult/app/:appId", cfg.ScoringResultHandler.ListByAppID)
	api.PUT("/scoringResult/:id", cfg.ScoringResultHandler.Update)
	api.DELETE("/scoringResult/:id", cfg.ScoringResultHandler.Delete)

	// Answers
	api.POST("/userAnswer/submit", cfg.UserAnswerHandler.Submit)
	api.GET("/userAnswer/app/:appId", cfg.UserAnswerHandler.ListByAppID)
	api.GET("/userAnswer/:id", cfg.UserAnswerHandler.GetByID)

	return router
}
