package worker

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ticketloop/reminder-scheduler/internal/config"
	"github.com/ticketloop/reminder-scheduler/internal/db"
	"github.com/ticketloop/reminder-scheduler/internal/logger"
	"github.com/ticketloop/reminder-scheduler/internal/metrics"
	"github.com/ticketloop/reminder-scheduler/internal/notifier"
	"github.com/ticketloop/reminder-scheduler/internal/repository"
	"github.com/ticketloop/reminder-scheduler/internal/scheduler"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the reminder batch scheduler loop",
	RunE:  runScheduler,
}

func runScheduler(cmd *cobra.Command, args []string) error {
	// 1) load config
	cfgPath, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger.Init(cfg.Log.Level)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	// 2) DB connection (MySQL)
	dbx, err := db.NewMySQL(cfg.MySQL)
	if err != nil {
		return fmt.Errorf("mysql connect: %w", err)
	}
	defer dbx.Close()

	// 3) run-stats reporting (ClickHouse, optional in dev)
	var statsRepo repository.RunStatsRepository
	chDB, err := db.NewClickHouse(cfg.ClickHouse)
	if err != nil {
		log.Printf("clickhouse unavailable, run history disabled: %v", err)
	} else {
		defer func() { _ = chDB.Close() }()
		statsRepo = repository.NewRunStatsRepository(chDB)
	}

	// 4) notification channel
	notif, closeNotif, err := notifier.FromConfig(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeNotif() }()

	remindersRepo := repository.NewRemindersRepository(dbx)
	sched := scheduler.New(remindersRepo, notif, statsRepo, logger.L())

	loop := scheduler.NewLoop(
		sched,
		cfg.Scheduler.PollInterval,
		cfg.Scheduler.BatchLimit,
		cfg.Scheduler.RunTimeout,
		logger.L(),
	)

	// 5) graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf(">> scheduler started notifier=%s interval=%s limit=%d timeout=%s",
		notif.Name(), loop.Interval, loop.BatchLimit, loop.RunTimeout)

	return loop.Run(ctx)
}
