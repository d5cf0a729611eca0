package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/ticketloop/reminder-scheduler/internal/config"
	"github.com/ticketloop/reminder-scheduler/internal/db"
	"github.com/ticketloop/reminder-scheduler/internal/model"
	"github.com/ticketloop/reminder-scheduler/internal/repository"
	"github.com/ticketloop/reminder-scheduler/internal/util"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo reminders",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// 2) connect MySQL
		sqlDB, err := db.NewMySQL(cfg.MySQL)
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		log.Println(">> Seeding demo reminders...")

		if err := seedReminders(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed")
		return nil
	},
}

// seedReminders inserts a spread of due and not-yet-due demo rows in a
// single transaction. A fresh ULID per row keeps reruns additive.
func seedReminders(dbx *sqlx.DB) error {
	now := time.Now()
	rows := []model.Reminder{
		{SubjectReference: "reg-1001", Type: model.TypeInitial, ScheduledAt: now.Add(-10 * time.Minute)},
		{SubjectReference: "reg-1002", Type: model.TypeFollowup1, ScheduledAt: now.Add(-5 * time.Minute)},
		{SubjectReference: "reg-1003", Type: model.TypeFollowup2, ScheduledAt: now.Add(-3 * time.Minute)},
		{SubjectReference: "reg-1004", Type: model.Type24HBefore, ScheduledAt: now.Add(-1 * time.Minute)},
		{SubjectReference: "reg-1005", Type: model.TypeFinal, ScheduledAt: now.Add(30 * time.Minute)},
	}

	repo := repository.NewRemindersRepository(dbx)

	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	ctx := context.Background()
	for i := range rows {
		rows[i].ID = util.NewID()
		if err := repo.Insert(ctx, tx, rows[i]); err != nil {
			return fmt.Errorf("insert reminder %q: %w", rows[i].SubjectReference, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reminders: %w", err)
	}
	return nil
}
