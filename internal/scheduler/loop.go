package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Loop drives the scheduler on a ticker, standing in for cron. Each tick
// is one independent run; overlapping deployments running the same loop
// are safe for the same reason concurrent manual triggers are.
type Loop struct {
	Sched      *Scheduler
	Interval   time.Duration
	BatchLimit int
	RunTimeout time.Duration

	logger *zap.Logger
}

func NewLoop(sched *Scheduler, interval time.Duration, batchLimit int, runTimeout time.Duration, logger *zap.Logger) *Loop {
	if interval <= 0 {
		interval = time.Minute
	}
	if batchLimit <= 0 {
		batchLimit = DefaultBatchLimit
	}
	if runTimeout <= 0 {
		runTimeout = 5 * time.Minute
	}

	return &Loop{
		Sched:      sched,
		Interval:   interval,
		BatchLimit: batchLimit,
		RunTimeout: runTimeout,
		logger:     logger,
	}
}

// Run blocks until ctx is cancelled, triggering one run per tick.
func (l *Loop) Run(ctx context.Context) error {
	tick := time.NewTicker(l.Interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			l.logger.Info("scheduler loop stopping")
			return nil
		case <-tick.C:
			l.tickOnce(ctx)
		}
	}
}

func (l *Loop) tickOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, l.RunTimeout)
	defer cancel()

	if _, err := l.Sched.RunOnce(runCtx, l.BatchLimit); err != nil {
		l.logger.Error("scheduled run reported errors", zap.Error(err))
	}
}
