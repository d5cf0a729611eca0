package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ticketloop/reminder-scheduler/internal/model"
)

// HTTPNotifier delivers reminders by POSTing to the platform's
// delivery service (the transactional-email boundary).
type HTTPNotifier struct {
	name     string
	baseURL  string
	sendPath string
	client   *http.Client
	br       *Breaker
}

func NewHTTPNotifier(name, baseURL, sendPath string, timeoutMs, failThreshold, openForMs int) *HTTPNotifier {
	if timeoutMs <= 0 {
		timeoutMs = 3000
	}

	if failThreshold <= 0 {
		failThreshold = 3
	}

	if openForMs <= 0 {
		openForMs = 15000
	}

	return &HTTPNotifier{
		name:     name,
		baseURL:  baseURL,
		sendPath: sendPath,
		client:   &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond},
		br:       NewBreaker(failThreshold, time.Duration(openForMs)*time.Millisecond),
	}
}

func (n *HTTPNotifier) Name() string { return n.name }

type sendPayload struct {
	SubjectReference string `json:"subject_reference"`
	ReminderType     string `json:"reminder_type"`
}

func (n *HTTPNotifier) Send(ctx context.Context, rem model.Reminder) error {
	if !n.br.Allow() {
		return ErrChannelOpen
	}

	err := n.post(ctx, rem)
	n.br.Record(err)

	return err
}

func (n *HTTPNotifier) post(ctx context.Context, rem model.Reminder) error {
	b, _ := json.Marshal(sendPayload{
		SubjectReference: rem.SubjectReference,
		ReminderType:     rem.Type.String(),
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+n.sendPath, bytes.NewReader(b))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}

	defer res.Body.Close()

	if res.StatusCode/100 != 2 {
		return fmt.Errorf("notifier=%s reminder=%s status=%d", n.name, rem.ID, res.StatusCode)
	}

	return nil
}
