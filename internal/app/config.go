package app

import (
	"strings"
	"time"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/utils"
)

type Config struct {
	Addr         string
	AllowOrigins []string
	LockWait     time.Duration
	LockLease    time.Duration
	AnswerTTL    time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	addr := utils.GetEnv("HTTP_ADDR", ":8080", log)
	origins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)
	lockWaitSeconds := utils.GetEnvAsInt("ANSWER_LOCK_WAIT_SECONDS", 3, log)
	lockLeaseSeconds := utils.GetEnvAsInt("ANSWER_LOCK_LEASE_SECONDS", 15, log)
	answerTTLSeconds := utils.GetEnvAsInt("ANSWER_CACHE_TTL_SECONDS", 300, log)

	var allowOrigins []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			allowOrigins = append(allowOrigins, o)
		}
	}

	return Config{
		Addr:         addr,
		AllowOrigins: allowOrigins,
		LockWait:     time.Duration(lockWaitSeconds) * time.Second,
		LockLease:    time.Duration(lockLeaseSeconds) * time.Second,
		AnswerTTL:    time.Duration(answerTTLSeconds) * time.Second,
	}
}
