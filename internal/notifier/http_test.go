package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ticketloop/reminder-scheduler/internal/model"
)

func testReminder() model.Reminder {
	return model.Reminder{
		ID:               "01J0TESTREMINDER0000000000",
		SubjectReference: "reg-42",
		Type:             model.TypeFollowup1,
		ScheduledAt:      time.Now().Add(-time.Minute),
		Status:           model.StatusScheduled,
	}
}

func TestHTTPNotifierSend(t *testing.T) {
	var gotBody sendPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/notifications/send" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	n := NewHTTPNotifier("test", srv.URL, "/v1/notifications/send", 1000, 3, 1000)

	if err := n.Send(context.Background(), testReminder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody.SubjectReference != "reg-42" || gotBody.ReminderType != "followup-1" {
		t.Fatalf("payload = %+v", gotBody)
	}
}

func TestHTTPNotifierNon2xxIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := NewHTTPNotifier("test", srv.URL, "/send", 1000, 10, 1000)

	if err := n.Send(context.Background(), testReminder()); err == nil {
		t.Fatal("non-2xx must be a delivery failure")
	}
}

func TestHTTPNotifierBreakerFailsFast(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	// threshold 2, long cool-off: third send must not reach the server
	n := NewHTTPNotifier("test", srv.URL, "/send", 1000, 2, 60000)

	rem := testReminder()
	_ = n.Send(context.Background(), rem)
	_ = n.Send(context.Background(), rem)

	err := n.Send(context.Background(), rem)
	if !errors.Is(err, ErrChannelOpen) {
		t.Fatalf("open breaker must refuse the attempt, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("server saw %d calls, want 2 (breaker fails fast)", calls)
	}
}
