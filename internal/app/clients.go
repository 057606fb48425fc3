package app

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/quizforge/quizforge-backend/internal/clients/openai"
	redisclient "github.com/quizforge/quizforge-backend/internal/clients/redis"
	"github.com/quizforge/quizforge-backend/internal/logger"
)

type Clients struct {
	Redis       *goredis.Client
	AnswerCache *redisclient.AnswerCache
	Locker      *redisclient.Locker
	AI          openai.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	rdb, err := redisclient.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}

	ai, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init ai client: %w", err)
	}

	return Clients{
		Redis:       rdb,
		AnswerCache: redisclient.NewAnswerCache(rdb, log, cfg.AnswerTTL),
		Locker:      redisclient.NewLocker(rdb, log, cfg.LockWait, cfg.LockLease),
		AI:          ai,
	}, nil
}
