package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Job periodically purges rejection rows older than the retention window.
// Without it a declined like suppresses that liker forever.
type Job struct {
	rejected  rejectedLikePurger
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
	logger    *zap.Logger
}

type rejectedLikePurger interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

func New(rejected rejectedLikePurger, retention, interval time.Duration, logger *zap.Logger) *Job {
	if retention <= 0 {
		retention = 180 * 24 * time.Hour
	}
	if interval <= 0 {
		interval = 6 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		rejected:  rejected,
		retention: retention,
		interval:  interval,
		now:       time.Now,
		logger:    logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	if j.rejected == nil {
		return fmt.Errorf("rejected like store is nil")
	}

	cutoff := j.now().UTC().Add(-j.retention)
	deleted, err := j.rejected.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("purge rejected likes: %w", err)
	}

	if deleted > 0 {
		j.logger.Info("purged stale rejected likes",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}

	return nil
}

// RunPeriodically blocks until the context is canceled.
func (j *Job) RunPeriodically(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				j.logger.Warn("cleanup run failed", zap.Error(err))
			}
		}
	}
}
