package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/ticketloop/reminder-scheduler/internal/metrics"
	"github.com/ticketloop/reminder-scheduler/internal/model"
	"github.com/ticketloop/reminder-scheduler/internal/notifier"
	"github.com/ticketloop/reminder-scheduler/internal/repository"
)

// DefaultBatchLimit is the production per-run cap.
const DefaultBatchLimit = 100

// Store is the slice of the reminders repository a run needs.
type Store interface {
	SelectDueBatch(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error)
	MarkOutcome(ctx context.Context, id string, success bool, errText *string, processedAt time.Time) (bool, error)
}

// Scheduler executes independent selection→dispatch→record runs.
// It holds no cross-run state; concurrent RunOnce calls are safe because
// the store's conditional outcome write is the only mutation.
type Scheduler struct {
	store  Store
	notif  notifier.Notifier
	stats  repository.RunStatsRepository // nil = run history disabled
	logger *zap.Logger

	now func() time.Time
}

func New(store Store, notif notifier.Notifier, stats repository.RunStatsRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		store:  store,
		notif:  notif,
		stats:  stats,
		logger: logger,
		now:    time.Now,
	}
}

// RunOnce performs one batch pass. limit <= 0 falls back to
// DefaultBatchLimit. The returned RunResult is always meaningful, even
// when err is non-nil: already-recorded outcomes stand.
func (s *Scheduler) RunOnce(ctx context.Context, limit int) (model.RunResult, error) {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}

	start := s.now()
	res := model.RunResult{Timestamp: start}

	batch, err := s.store.SelectDueBatch(ctx, start, limit)
	if err != nil {
		// Nothing dispatched, nothing to roll back; safe to retry the run.
		metrics.RunsTotal.WithLabelValues("error").Inc()
		res.DurationMs = time.Since(start).Milliseconds()
		return res, fmt.Errorf("select due batch: %w", err)
	}

	res.Processed = len(batch)

	var runErr error
	for _, rem := range batch {
		if ctx.Err() != nil {
			// Timeout or cancel: unreached reminders stay scheduled and
			// are picked up by the next run.
			runErr = multierr.Append(runErr, fmt.Errorf("dispatch aborted: %w", ctx.Err()))
			break
		}
		s.dispatchOne(ctx, rem, &res, &runErr)
	}

	res.DurationMs = time.Since(start).Milliseconds()

	if runErr != nil {
		metrics.RunsTotal.WithLabelValues("error").Inc()
	} else {
		metrics.RunsTotal.WithLabelValues("ok").Inc()
	}
	metrics.RunDuration.Observe(time.Since(start).Seconds())

	s.recordRun(ctx, res)

	s.logger.Info("run complete",
		zap.Int("processed", res.Processed),
		zap.Int("sent", res.Sent),
		zap.Int("failed", res.Failed),
		zap.Int64("duration_ms", res.DurationMs),
	)

	return res, runErr
}

// dispatchOne makes exactly one delivery attempt and commits the outcome.
// A delivery failure is tallied and the loop moves on; an outcome-write
// failure leaves the row scheduled for the next run and is aggregated
// into the run's error report.
func (s *Scheduler) dispatchOne(ctx context.Context, rem model.Reminder, res *model.RunResult, runErr *error) {
	sendErr := s.notif.Send(ctx, rem)

	success := sendErr == nil
	var errText *string
	if sendErr != nil {
		msg := sendErr.Error()
		errText = &msg
	}

	applied, werr := s.store.MarkOutcome(ctx, rem.ID, success, errText, s.now())
	if werr != nil {
		s.logger.Error("outcome write failed; reminder stays scheduled",
			zap.String("id", rem.ID),
			zap.Bool("send_success", success),
			zap.Error(werr),
		)
		*runErr = multierr.Append(*runErr, fmt.Errorf("record outcome %s: %w", rem.ID, werr))
		return
	}

	if !applied {
		// A concurrent run transitioned the row first. Its run owns the
		// outcome in its tally; this one does not count it.
		s.logger.Debug("reminder already terminal, skipping",
			zap.String("id", rem.ID),
		)
		return
	}

	if success {
		res.Sent++
		metrics.RemindersTotal.WithLabelValues("sent", rem.Type.String()).Inc()
	} else {
		res.Failed++
		metrics.RemindersTotal.WithLabelValues("failed", rem.Type.String()).Inc()
		s.logger.Warn("reminder delivery failed",
			zap.String("id", rem.ID),
			zap.String("subject", rem.SubjectReference),
			zap.String("type", rem.Type.String()),
			zap.Error(sendErr),
		)
	}
}

// recordRun appends the summary to run_stats. Best effort: reporting
// must never fail a run whose outcomes are already durable.
func (s *Scheduler) recordRun(ctx context.Context, res model.RunResult) {
	if s.stats == nil {
		return
	}
	if err := s.stats.InsertRun(ctx, res); err != nil {
		s.logger.Warn("run stats insert failed", zap.Error(err))
	}
}
