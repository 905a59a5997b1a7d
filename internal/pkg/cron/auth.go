package cron

import (
	"context"
	"log/slog"
	"time"
)

// TokenPruner drops revocation entries whose tokens have expired.
type TokenPruner interface {
	PruneRevoked() int
}

func RegisterTokenPruning(scheduler *Scheduler, pruner TokenPruner) {
	scheduler.AddJob(Job{
		Name:     "prune_revoked_tokens",
		Interval: 15 * time.Minute,
		Fn: func(ctx context.Context) error {
			if n := pruner.PruneRevoked(); n > 0 {
				slog.Debug("revoked tokens pruned", "count", n)
			}
			return nil
		},
	})
}
