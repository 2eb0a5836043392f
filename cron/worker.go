package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"glowbook/config"
	snapshotRepo "glowbook/database/repository/snapshot"
	"glowbook/services/appointment"
	"glowbook/services/tasks"
	"glowbook/services/wallet"
)

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}
}

// InitSnapshotWorker runs the async reconciliation worker in background and
// periodically enqueues a refresh task for every account with cached
// projections, so dashboards converge with server truth even without user
// actions.
func InitSnapshotWorker(apptSvc appointment.AppointmentService, walletSvc wallet.WalletService, snapshots snapshotRepo.Repository) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSnapshotRefresh, handleSnapshotRefresh(apptSvc, walletSvc))

	go scheduleRefreshes(snapshots)

	go func() {
		log.Println("[SnapshotWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SnapshotWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SnapshotWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSnapshotRefresh(apptSvc appointment.AppointmentService, walletSvc wallet.WalletService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.SnapshotRefreshPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[SnapshotWorker] invalid payload: %v", err)
			return err
		}

		if _, err := apptSvc.RefreshAppointments(ctx, p.AccountID); err != nil {
			log.Printf("[SnapshotWorker] appointment refresh failed for account %s: %v", p.AccountID, err)
			return err
		}
		if _, err := walletSvc.Refresh(ctx, p.AccountID); err != nil {
			log.Printf("[SnapshotWorker] wallet refresh failed for account %s: %v", p.AccountID, err)
			return err
		}
		return nil
	}
}

// scheduleRefreshes enqueues one refresh task per known account on the
// configured interval.
func scheduleRefreshes(snapshots snapshotRepo.Repository) {
	client := asynq.NewClient(redisOpts())
	defer client.Close()

	interval := time.Duration(config.AppConfig.SnapshotRefreshMinutes) * time.Minute
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx := context.Background()

	for range ticker.C {
		accounts, err := snapshots.Accounts(ctx)
		if err != nil {
			log.Printf("[SnapshotWorker] failed to list accounts: %v", err)
			continue
		}
		for _, accountID := range accounts {
			task, opts, err := tasks.NewSnapshotRefreshTask(accountID)
			if err != nil {
				log.Printf("[SnapshotWorker] failed to build refresh task: %v", err)
				continue
			}
			if _, err := client.Enqueue(task, opts...); err != nil {
				log.Printf("[SnapshotWorker] failed to enqueue refresh for account %s: %v", accountID, err)
			}
		}
	}
}
