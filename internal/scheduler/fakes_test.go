package scheduler

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ticketloop/reminder-scheduler/internal/model"
)

// memStore mirrors the reminders table semantics in memory: due-filtered
// capped selection ordered oldest-first with id tiebreak, and the
// status-guarded conditional outcome write.
type memStore struct {
	mu   sync.Mutex
	rows map[string]*model.Reminder

	transitions map[string]int // per-id terminal transition count

	selectErr error
	markErrOn map[string]error // per-id forced write failure
}

func newMemStore() *memStore {
	return &memStore{
		rows:        make(map[string]*model.Reminder),
		transitions: make(map[string]int),
		markErrOn:   make(map[string]error),
	}
}

func (m *memStore) add(r model.Reminder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := r
	m.rows[r.ID] = &cp
}

func (m *memStore) get(id string) model.Reminder {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.rows[id]
}

func (m *memStore) SelectDueBatch(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	if m.selectErr != nil {
		return nil, m.selectErr
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var due []model.Reminder
	for _, r := range m.rows {
		if r.Due(now) {
			due = append(due, *r)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].ScheduledAt.Equal(due[j].ScheduledAt) {
			return due[i].ScheduledAt.Before(due[j].ScheduledAt)
		}
		return due[i].ID < due[j].ID
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (m *memStore) MarkOutcome(ctx context.Context, id string, success bool, errText *string, processedAt time.Time) (bool, error) {
	if err := m.markErrOn[id]; err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rows[id]
	if !ok || r.Status != model.StatusScheduled {
		return false, nil
	}

	if success {
		r.Status = model.StatusSent
		r.LastError = nil
	} else {
		r.Status = model.StatusFailed
		r.LastError = errText
	}
	ts := processedAt
	r.ProcessedAt = &ts
	m.transitions[id]++
	return true, nil
}

// memNotifier records send order and fails on request.
type memNotifier struct {
	mu     sync.Mutex
	sent   []string
	failOn map[string]error
}

func newMemNotifier() *memNotifier {
	return &memNotifier{failOn: make(map[string]error)}
}

func (n *memNotifier) Name() string { return "mem" }

func (n *memNotifier) Send(ctx context.Context, rem model.Reminder) error {
	n.mu.Lock()
	n.sent = append(n.sent, rem.ID)
	n.mu.Unlock()

	if err := n.failOn[rem.ID]; err != nil {
		return err
	}
	return nil
}

func (n *memNotifier) sends() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.sent))
	copy(out, n.sent)
	return out
}
