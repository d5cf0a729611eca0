package notifier

import (
	"fmt"
	"strings"

	"github.com/ticketloop/reminder-scheduler/internal/config"
	"github.com/ticketloop/reminder-scheduler/internal/kafka"
)

// FromConfig builds the configured notification channel. The returned
// close func releases channel resources and may be called once; it is
// never nil.
func FromConfig(cfg config.Config) (Notifier, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Notifier.Mode)) {
	case "", "http":
		if strings.TrimSpace(cfg.Notifier.BaseURL) == "" {
			return nil, nil, fmt.Errorf("notifier: http mode requires base_url")
		}
		n := NewHTTPNotifier(
			"delivery-http",
			strings.TrimRight(cfg.Notifier.BaseURL, "/"),
			cfg.Notifier.SendPath,
			cfg.Notifier.TimeoutMs,
			cfg.Notifier.Breaker.FailThreshold,
			cfg.Notifier.Breaker.OpenForMs,
		)
		return n, func() error { return nil }, nil

	case "kafka":
		if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "" {
			return nil, nil, fmt.Errorf("notifier: kafka mode requires brokers and topic")
		}
		p := kafka.NewProducerFromConfig(kafka.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			BatchTimeout: cfg.Kafka.BatchTimeout,
			WriteTimeout: cfg.Kafka.WriteTimeout,
		})
		return NewKafkaNotifier(p), p.Close, nil

	default:
		return nil, nil, fmt.Errorf("notifier: unknown mode %q", cfg.Notifier.Mode)
	}
}
