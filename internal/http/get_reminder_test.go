package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ticketloop/reminder-scheduler/internal/model"
)

type fakeFinder struct {
	gotID string
	rem   *model.Reminder
	err   error
}

func (f *fakeFinder) GetByID(ctx context.Context, id string) (*model.Reminder, error) {
	f.gotID = id
	return f.rem, f.err
}

func doGetReminder(t *testing.T, finder ReminderFinder, id string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/reminders/"+id, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)

	h := getReminderHandler(finder)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestGetReminderHandler(t *testing.T) {
	lastErr := "delivery service 503"
	processed := time.Now().Add(-time.Hour)
	finder := &fakeFinder{rem: &model.Reminder{
		ID:               "01J0GETREMINDER00000000000",
		SubjectReference: "reg-42",
		Type:             model.TypeFollowup1,
		ScheduledAt:      time.Now().Add(-2 * time.Hour),
		Status:           model.StatusFailed,
		LastError:        &lastErr,
		ProcessedAt:      &processed,
	}}

	rec := doGetReminder(t, finder, "01J0GETREMINDER00000000000")

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if finder.gotID != "01J0GETREMINDER00000000000" {
		t.Fatalf("looked up %q", finder.gotID)
	}

	var resp reminderResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Status != "failed" || resp.Type != "followup-1" || resp.SubjectReference != "reg-42" {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.LastError == nil || *resp.LastError != lastErr {
		t.Fatalf("last_error = %v", resp.LastError)
	}
}

func TestGetReminderHandlerNotFound(t *testing.T) {
	rec := doGetReminder(t, &fakeFinder{}, "01J0MISSING000000000000000")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}

func TestGetReminderHandlerStoreError(t *testing.T) {
	finder := &fakeFinder{err: fmt.Errorf("mysql gone away")}

	rec := doGetReminder(t, finder, "01J0ERR0000000000000000000")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", rec.Code)
	}
}
