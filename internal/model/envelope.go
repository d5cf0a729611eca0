package model

import "time"

// Envelope is the payload published to Kafka for the downstream
// delivery pipeline when the kafka notifier is configured.
type Envelope struct {
	ID               string       `json:"id"` // reminder ULID
	SubjectReference string       `json:"subject_reference"`
	Type             ReminderType `json:"reminder_type"`
	ScheduledAt      time.Time    `json:"scheduled_at"`
}
