package job

import (
	"context"

	"go.uber.org/zap"
)

// Sweeper compacts presence index sets. Session keys expire on their own;
// this only trims the per-context indexes so listings stay cheap.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// PresenceSweepJob periodically removes stale entries from the presence
// context indexes
type PresenceSweepJob struct {
	sweeper Sweeper
	logger  *zap.Logger
}

// NewPresenceSweepJob creates a new PresenceSweepJob instance
func NewPresenceSweepJob(sweeper Sweeper, logger *zap.Logger) *PresenceSweepJob {
	return &PresenceSweepJob{
		sweeper: sweeper,
		logger:  logger,
	}
}

// Run executes one sweep pass
func (j *PresenceSweepJob) Run() {
	ctx := context.Background()

	removed, err := j.sweeper.Sweep(ctx)
	if err != nil {
		j.logger.Error("Presence sweep failed", zap.Error(err))
		return
	}

	if removed > 0 {
		j.logger.Info("Presence sweep completed", zap.Int("removed", removed))
	}
}
