package http

import (
	"net/http"
	"strconv"

	echo "github.com/labstack/echo/v4"

	"github.com/ticketloop/reminder-scheduler/internal/repository"
)

func listRunsHandler(statsRepo repository.RunStatsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit := 50
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 1000 {
				limit = n
			}
		}

		runs, err := statsRepo.ListRecent(c.Request().Context(), limit)
		if err != nil {
			c.Logger().Errorf("run stats list failed: %v", err)

			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"limit":   limit,
			"count":   len(runs),
			"results": runs,
		})
	}
}
