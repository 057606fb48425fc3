package scoring

import (
	"context"
	"fmt"

	"github.com/quizforge/quizforge-backend/internal/apierr"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// Strategy turns an ordered list of answer keys into a scored UserAnswer.
// Implementations must be safe for concurrent use.
type Strategy interface {
	Score(ctx context.Context, choices []string, app *types.App) (*types.UserAnswer, error)
}

// Key identifies the strategy for an app's (type, scoring method) pair.
type Key struct {
	AppType types.AppType
	Method  types.ScoringMethod
}

func (k Key) String() string {
	return fmt.Sprintf("(%s, method=%d)", k.AppType.Label(), k.Method)
}

// Registry maps strategy keys to implementations. It is populated once at
// startup and read-only afterwards, so lookups need no locking.
type Registry struct {
	strategies map[Key]Strategy
}

func NewRegistry() *Registry {
	return &Registry{strategies: make(map[Key]Strategy)}
}

// Register adds a strategy under key. A second registration for the same key
// is a startup configuration error.
func (r *Registry) Register(key Key, s Strategy) error {
	if s == nil {
		return fmt.Errorf("scoring: nil strategy for key %s", key)
	}
	if _, exists := r.strategies[key]; exists {
		return fmt.Errorf("scoring: duplicate strategy for key %s", key)
	}
	r.strategies[key] = s
	return nil
}

// Resolve returns the strategy for the app's (type, method) pair.
func (r *Registry) Resolve(appType types.AppType, method types.ScoringMethod) (Strategy, error) {
	s, ok := r.strategies[Key{AppType: appType, Method: method}]
	if !ok {
		return nil, apierr.NotFound(fmt.Errorf("no scoring strategy for key %s", Key{AppType: appType, Method: method}))
	}
	return s, nil
}

// BuildRegistry assembles the full strategy table. The AI strategy serves
// both app types; the deterministic strategies are type-specific.
func BuildRegistry(scoreStrategy, testStrategy, aiStrategy Strategy) (*Registry, error) {
	r := NewRegistry()
	entries := []struct {
		key Key
		s   Strategy
	}{
		{Key{types.AppTypeScore, types.ScoringMethodCustom}, scoreStrategy},
		{Key{types.AppTypeTest, types.ScoringMethodCustom}, testStrategy},
		{Key{types.AppTypeScore, types.ScoringMethodAI}, aiStrategy},
		{Key{types.AppTypeTest, types.ScoringMethodAI}, aiStrategy},
	}
	for _, e := range entries {
		if err := r.Register(e.key, e.s); err != nil {
			return nil, err
		}
	}
	return r, nil
}
