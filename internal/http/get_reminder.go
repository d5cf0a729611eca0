package http

import (
	"context"
	"net/http"
	"time"

	echo "github.com/labstack/echo/v4"

	"github.com/ticketloop/reminder-scheduler/internal/model"
)

// ReminderFinder is the lookup slice of the reminders repository needed
// by the ops surface.
type ReminderFinder interface {
	GetByID(ctx context.Context, id string) (*model.Reminder, error)
}

type reminderResponse struct {
	ID               string     `json:"id"`
	SubjectReference string     `json:"subject_reference"`
	Type             string     `json:"reminder_type"`
	ScheduledAt      time.Time  `json:"scheduled_at"`
	Status           string     `json:"status"`
	LastError        *string    `json:"last_error,omitempty"`
	ProcessedAt      *time.Time `json:"processed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func getReminderHandler(finder ReminderFinder) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if id == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "id is required"})
		}

		rem, err := finder.GetByID(c.Request().Context(), id)
		if err != nil {
			c.Logger().Errorf("reminder lookup failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}
		if rem == nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "reminder not found"})
		}

		return c.JSON(http.StatusOK, reminderResponse{
			ID:               rem.ID,
			SubjectReference: rem.SubjectReference,
			Type:             rem.Type.String(),
			ScheduledAt:      rem.ScheduledAt,
			Status:           rem.Status.String(),
			LastError:        rem.LastError,
			ProcessedAt:      rem.ProcessedAt,
			CreatedAt:        rem.CreatedAt,
		})
	}
}
