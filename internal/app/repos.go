package app

import (
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
)

type Repos struct {
	App           repos.AppRepo
	Question      repos.QuestionRepo
	ScoringResult repos.ScoringResultRepo
	UserAnswer    repos.UserAnswerRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		App:           repos.NewAppRepo(db, log),
		Question:      repos.NewQuestionRepo(db, log),
		ScoringResult: repos.NewScoringResultRepo(db, log),
		UserAnswer:    repos.NewUserAnswerRepo(db, log),
	}
}
