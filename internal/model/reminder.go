package model

import (
	"strings"
	"time"
)

type ReminderStatus string

const (
	StatusScheduled ReminderStatus = "scheduled"
	StatusSent      ReminderStatus = "sent"
	StatusFailed    ReminderStatus = "failed"
)

func (s ReminderStatus) String() string {
	return string(s)
}

func (s ReminderStatus) Valid() bool {
	return s == StatusScheduled || s == StatusSent || s == StatusFailed
}

// Terminal reports whether no further transition is allowed from s.
func (s ReminderStatus) Terminal() bool {
	return s == StatusSent || s == StatusFailed
}

type ReminderType string

const (
	TypeInitial   ReminderType = "initial"
	TypeFollowup1 ReminderType = "followup-1"
	TypeFollowup2 ReminderType = "followup-2"
	TypeFinal     ReminderType = "final"
	Type24HBefore ReminderType = "24-hours-before"
)

func (t ReminderType) String() string { return string(t) }

func (t ReminderType) Valid() bool {
	switch t {
	case TypeInitial, TypeFollowup1, TypeFollowup2, TypeFinal, Type24HBefore:
		return true
	default:
		return false
	}
}

// ParseReminderType normalizes input; empty => initial.
// Returns (value, true) if valid; otherwise (initial, false).
func ParseReminderType(s string) (ReminderType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "initial":
		return TypeInitial, true
	case "followup-1":
		return TypeFollowup1, true
	case "followup-2":
		return TypeFollowup2, true
	case "final":
		return TypeFinal, true
	case "24-hours-before":
		return Type24HBefore, true
	default:
		return TypeInitial, false
	}
}

// Reminder is the DB entity persisted in the reminders table.
// scheduled_at is set once at creation and never mutated here;
// status moves one-way from scheduled to sent or failed.
type Reminder struct {
	ID               string         `db:"id"`
	SubjectReference string         `db:"subject_reference"` // owning ticket/registration record
	Type             ReminderType   `db:"reminder_type"`
	ScheduledAt      time.Time      `db:"scheduled_at"`
	Status           ReminderStatus `db:"status"`
	LastError        *string        `db:"last_error"`   // set only on transition to failed
	ProcessedAt      *time.Time     `db:"processed_at"` // set on any terminal transition
	CreatedAt        time.Time      `db:"created_at"`
}

// Due reports whether the reminder is eligible for selection at now.
func (r Reminder) Due(now time.Time) bool {
	return r.Status == StatusScheduled && !r.ScheduledAt.After(now)
}
