package notifier

import (
	"context"
	"fmt"

	"github.com/ticketloop/reminder-scheduler/internal/model"
)

// ErrChannelOpen means the breaker refused the attempt; the delivery
// service was not contacted.
var ErrChannelOpen = fmt.Errorf("notification channel open")

// Notifier is the outbound notification channel. Send makes exactly one
// logical delivery attempt for the reminder; any error is a terminal
// failure for this attempt, never retried here.
type Notifier interface {
	Name() string
	Send(ctx context.Context, rem model.Reminder) error
}
