package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"voyago/config"
	"voyago/models"

	"github.com/hibiken/asynq"
)

// InitReminderWorker runs the async worker in background.
func InitReminderWorker() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePackingReminder, handlePackingReminderTask)

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

// TypePackingReminder mirrors tasks.TypePackingReminder; the worker side keeps
// its own copy so the cron package stays decoupled from the enqueue side.
const TypePackingReminder = "reminder:packing"

func handlePackingReminderTask(ctx context.Context, task *asynq.Task) error {
	var p models.PackingReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[ReminderHandler] invalid payload: %v", err)
		return err
	}

	// Delivery is a log line for now; push delivery hangs off this hook.
	// The scheduler only knows the session, so identity is best-effort.
	recipient := p.SessionID
	if p.UserID != "" {
		recipient = p.UserID
	}
	log.Printf("[ReminderHandler] packing reminder for %s: %s -> %s (departs %s)",
		recipient, p.Title, p.Body, p.StartDate)
	return nil
}
