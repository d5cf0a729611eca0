package http

import (
	"context"
	"net/http"
	"strconv"

	echo "github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/ticketloop/reminder-scheduler/internal/model"
)

// Runner is the slice of the scheduler the trigger endpoint needs.
type Runner interface {
	RunOnce(ctx context.Context, limit int) (model.RunResult, error)
}

type runResponse struct {
	model.RunResult
	Errors string `json:"errors,omitempty"`
}

// runRemindersHandler triggers one scheduler run. The optional `limit`
// query param caps the batch; omitted or zero falls back to the
// configured default.
func runRemindersHandler(runner Runner, defaultLimit int) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := defaultLimit
		if v := c.QueryParam("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			}
			limit = n
		}

		res, err := runner.RunOnce(c.Request().Context(), limit)
		if err != nil && res.Processed == 0 {
			// Selection failed before any dispatch: nothing happened,
			// safe to retry the whole run.
			log.Errorf("run failed: %v", err)

			return c.JSON(http.StatusInternalServerError, runResponse{RunResult: res, Errors: err.Error()})
		}

		resp := runResponse{RunResult: res}
		if err != nil {
			// Partial progress: recorded outcomes stand, the rest is
			// reported for alerting.
			log.Errorf("run completed with errors: %v", err)
			resp.Errors = err.Error()
		}

		return c.JSON(http.StatusOK, resp)
	}
}
