package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ticketloop/reminder-scheduler/internal/config"
	"github.com/ticketloop/reminder-scheduler/internal/db"
	httpSrv "github.com/ticketloop/reminder-scheduler/internal/http"
	"github.com/ticketloop/reminder-scheduler/internal/logger"
	"github.com/ticketloop/reminder-scheduler/internal/notifier"
	"github.com/ticketloop/reminder-scheduler/internal/repository"
	"github.com/ticketloop/reminder-scheduler/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP trigger server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger.Init(cfg.Log.Level)

		mysqlDB, err := db.NewMySQL(cfg.MySQL)
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer mysqlDB.Close()

		redisClient, err := db.NewRedis(cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis connect: %w", err)
		}
		defer func() { _ = redisClient.Close() }()

		chDB, err := db.NewClickHouse(cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse connect: %w", err)
		}
		defer func() {
			_ = chDB.Close()
		}()

		notif, closeNotif, err := notifier.FromConfig(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeNotif() }()

		remindersRepo := repository.NewRemindersRepository(mysqlDB)
		statsRepo := repository.NewRunStatsRepository(chDB)
		sched := scheduler.New(remindersRepo, notif, statsRepo, logger.L())

		server := httpSrv.NewServer(cfg, sched, remindersRepo, statsRepo, redisClient)

		errCh := make(chan error, 1)
		go func() {
			log.Printf("starting http on %s", cfg.HTTP.Addr)
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			log.Printf("signal received: %s, shutting down...", sig)
		case err := <-errCh:
			if err != nil {
				log.Printf("http server exited: %v", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}
