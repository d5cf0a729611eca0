package model

import (
	"testing"
	"time"
)

func TestParseReminderType(t *testing.T) {
	cases := []struct {
		in    string
		want  ReminderType
		valid bool
	}{
		{"", TypeInitial, true},
		{"initial", TypeInitial, true},
		{"  FOLLOWUP-1 ", TypeFollowup1, true},
		{"followup-2", TypeFollowup2, true},
		{"final", TypeFinal, true},
		{"24-hours-before", Type24HBefore, true},
		{"weekly", TypeInitial, false},
	}

	for _, tc := range cases {
		got, ok := ParseReminderType(tc.in)
		if got != tc.want || ok != tc.valid {
			t.Errorf("ParseReminderType(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.valid)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if StatusScheduled.Terminal() {
		t.Error("scheduled must not be terminal")
	}
	if !StatusSent.Terminal() || !StatusFailed.Terminal() {
		t.Error("sent and failed must be terminal")
	}
	if ReminderStatus("pending").Valid() {
		t.Error("unknown status must not validate")
	}
}

func TestReminderDue(t *testing.T) {
	now := time.Now()

	r := Reminder{Status: StatusScheduled, ScheduledAt: now.Add(-time.Minute)}
	if !r.Due(now) {
		t.Error("past scheduled reminder should be due")
	}

	r.ScheduledAt = now
	if !r.Due(now) {
		t.Error("scheduled_at == now should be due")
	}

	r.ScheduledAt = now.Add(time.Minute)
	if r.Due(now) {
		t.Error("future reminder should not be due")
	}

	r = Reminder{Status: StatusSent, ScheduledAt: now.Add(-time.Hour)}
	if r.Due(now) {
		t.Error("terminal reminder should never be due")
	}
}
