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

type fakeRunner struct {
	gotLimit int
	res      model.RunResult
	err      error
}

func (f *fakeRunner) RunOnce(ctx context.Context, limit int) (model.RunResult, error) {
	f.gotLimit = limit
	return f.res, f.err
}

func doRun(t *testing.T, runner Runner, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := runRemindersHandler(runner, 100)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestRunHandlerDefaultLimit(t *testing.T) {
	runner := &fakeRunner{res: model.RunResult{Processed: 3, Sent: 3, Timestamp: time.Now(), DurationMs: 12}}

	rec := doRun(t, runner, "/v1/reminders/run")

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if runner.gotLimit != 100 {
		t.Fatalf("limit %d, want configured default 100", runner.gotLimit)
	}

	var resp runResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Processed != 3 || resp.Sent != 3 || resp.Errors != "" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestRunHandlerExplicitLimit(t *testing.T) {
	runner := &fakeRunner{}

	rec := doRun(t, runner, "/v1/reminders/run?limit=25")

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	if runner.gotLimit != 25 {
		t.Fatalf("limit %d, want 25", runner.gotLimit)
	}
}

func TestRunHandlerRejectsBadLimit(t *testing.T) {
	for _, v := range []string{"0", "-5", "abc"} {
		runner := &fakeRunner{gotLimit: -1}
		rec := doRun(t, runner, "/v1/reminders/run?limit="+v)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("limit=%q: status %d, want 400", v, rec.Code)
		}
		if runner.gotLimit != -1 {
			t.Errorf("limit=%q: run must not be triggered", v)
		}
	}
}

func TestRunHandlerSelectionFailure(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("select due batch: store unreachable")}

	rec := doRun(t, runner, "/v1/reminders/run")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status %d, want 500", rec.Code)
	}
}

func TestRunHandlerPartialErrorsStillOK(t *testing.T) {
	runner := &fakeRunner{
		res: model.RunResult{Processed: 4, Sent: 3, Timestamp: time.Now()},
		err: fmt.Errorf("record outcome r2: write timeout"),
	}

	rec := doRun(t, runner, "/v1/reminders/run")

	// Recorded outcomes stand; partial progress is a 200 with an error report.
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	var resp runResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if resp.Errors == "" {
		t.Fatal("partial errors must be surfaced for alerting")
	}
	if resp.Processed != 4 || resp.Sent != 3 {
		t.Fatalf("resp = %+v", resp)
	}
}
