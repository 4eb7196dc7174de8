package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/andreeesz17/inmobiliaria-service/internal/session"
)

// StartSessionSweeper schedules a periodic pass over the session slot so an
// expired or corrupt token is evicted even when no request touches it.
// Reading the session is enough, eviction happens inside Current.
func StartSessionSweeper(sessions *session.Manager, intervalMinutes int, logger *zap.Logger) (*cron.Cron, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = 1
	}
	c := cron.New()
	spec := fmt.Sprintf("@every %dm", intervalMinutes)
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		principal := sessions.Current(ctx)
		logger.Debug("session sweep completed", zap.Bool("active", principal.Authenticated))
	})
	if err != nil {
		return nil, fmt.Errorf("schedule session sweeper: %w", err)
	}
	c.Start()
	return c, nil
}
