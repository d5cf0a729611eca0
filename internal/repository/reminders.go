package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ticketloop/reminder-scheduler/internal/model"
)

// RemindersRepository defines persistence for the reminders table.
type RemindersRepository interface {
	// Insert writes a new reminder row with status=scheduled. If tx is nil,
	// it will open/commit an internal transaction; otherwise it uses the given tx.
	Insert(ctx context.Context, tx *sqlx.Tx, r model.Reminder) error

	// SelectDueBatch returns up to limit reminders with status=scheduled and
	// scheduled_at <= now, oldest-due first. Ties on scheduled_at break by id,
	// which for ULIDs is insertion order. Pure read.
	SelectDueBatch(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error)

	// MarkOutcome transitions a reminder from scheduled to sent or failed with
	// a single conditional update. Returns false when the row was already
	// terminal (or absent); that is a no-op, not an error.
	MarkOutcome(ctx context.Context, id string, success bool, errText *string, processedAt time.Time) (bool, error)

	GetByID(ctx context.Context, id string) (*model.Reminder, error)
}

type RemindersRepositoryImpl struct {
	db *sqlx.DB
}

func NewRemindersRepository(db *sqlx.DB) *RemindersRepositoryImpl {
	return &RemindersRepositoryImpl{db: db}
}

var _ RemindersRepository = (*RemindersRepositoryImpl)(nil)

// withTx runs fn in the provided tx, or starts a new transaction when tx is nil.
func (r *RemindersRepositoryImpl) withTx(ctx context.Context, tx *sqlx.Tx, fn func(*sqlx.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}

	t, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() { _ = t.Rollback() }()
	if err := fn(t); err != nil {
		return err
	}

	return t.Commit()
}

func (r *RemindersRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, rem model.Reminder) error {
	const q = `
		INSERT INTO reminders
		    (id, subject_reference, reminder_type, scheduled_at, status, created_at)
		VALUES
		    (?,  ?,                 ?,             ?,            'scheduled', NOW())
	`
	return r.withTx(ctx, tx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, q,
			rem.ID, rem.SubjectReference, rem.Type.String(), rem.ScheduledAt,
		)
		return err
	})
}

func (r *RemindersRepositoryImpl) SelectDueBatch(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("select due batch: limit must be positive, got %d", limit)
	}

	// Ordering and the cap live in the query so the oldest-first invariant
	// holds at the data layer regardless of caller.
	const q = `
		SELECT id, subject_reference, reminder_type, scheduled_at, status, last_error, processed_at, created_at
		  FROM reminders
		 WHERE status = 'scheduled' AND scheduled_at <= ?
		 ORDER BY scheduled_at ASC, id ASC
		 LIMIT ?
	`
	var rows []model.Reminder
	if err := r.db.SelectContext(ctx, &rows, q, now, limit); err != nil {
		return nil, fmt.Errorf("select due batch: %w", err)
	}
	return rows, nil
}

// MarkOutcome is the at-most-once commit point: the WHERE clause requires the
// row to still be scheduled, so a concurrent run that got there first turns
// this call into a no-op instead of a double transition.
func (r *RemindersRepositoryImpl) MarkOutcome(ctx context.Context, id string, success bool, errText *string, processedAt time.Time) (bool, error) {
	status := model.StatusFailed
	if success {
		status = model.StatusSent
		errText = nil
	}

	const q = `
		UPDATE reminders
		   SET status = ?, last_error = ?, processed_at = ?
		 WHERE id = ? AND status = 'scheduled'
	`
	res, err := r.db.ExecContext(ctx, q, status.String(), errText, processedAt, id)
	if err != nil {
		return false, fmt.Errorf("mark outcome: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark outcome rows affected: %w", err)
	}
	return n == 1, nil
}

func (r *RemindersRepositoryImpl) GetByID(ctx context.Context, id string) (*model.Reminder, error) {
	var rem model.Reminder
	err := r.db.GetContext(ctx, &rem, `
		SELECT id, subject_reference, reminder_type, scheduled_at, status, last_error, processed_at, created_at
		  FROM reminders
		 WHERE id = ? LIMIT 1
	`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rem, nil
}
