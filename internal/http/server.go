package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ticketloop/reminder-scheduler/internal/config"
	"github.com/ticketloop/reminder-scheduler/internal/http/middleware"
	"github.com/ticketloop/reminder-scheduler/internal/metrics"
	"github.com/ticketloop/reminder-scheduler/internal/repository"
)

type Server struct{ e *echo.Echo }

// NewServer wires the trigger surface: an authenticated, rate-limited
// run endpoint plus the ops reporting and health routes.
func NewServer(cfg config.Config, runner Runner, reminders ReminderFinder, statsRepo repository.RunStatsRepository, rds *redis.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	authMW := middleware.APIKeyMiddleware(cfg.Auth.APIKeys)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:op:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	v1 := e.Group("/v1", authMW, rlMW)
	v1.POST("/reminders/run", runRemindersHandler(runner, cfg.Scheduler.BatchLimit))
	v1.GET("/reminders/:id", getReminderHandler(reminders))
	v1.GET("/reports/runs", listRunsHandler(statsRepo))

	return &Server{e: e}
}

func (s *Server) Start(addr string) error {
	log.Printf("http: listening on %s", addr)
	return s.e.Start(addr)
}
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
