package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ticketloop/reminder-scheduler/internal/kafka"
	"github.com/ticketloop/reminder-scheduler/internal/model"
)

// KafkaNotifier hands reminders to the downstream delivery pipeline by
// publishing an envelope per reminder. A broker ack counts as channel
// success; whatever happens past the topic is the consumer's problem.
type KafkaNotifier struct {
	producer *kafka.Producer
}

func NewKafkaNotifier(p *kafka.Producer) *KafkaNotifier {
	return &KafkaNotifier{producer: p}
}

func (n *KafkaNotifier) Name() string { return "kafka" }

func (n *KafkaNotifier) Send(ctx context.Context, rem model.Reminder) error {
	env := model.Envelope{
		ID:               rem.ID,
		SubjectReference: rem.SubjectReference,
		Type:             rem.Type,
		ScheduledAt:      rem.ScheduledAt,
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	// Key by subject so all reminders for one registration stay ordered
	// on a single partition.
	return n.producer.Publish(ctx, []byte(rem.SubjectReference), payload)
}
