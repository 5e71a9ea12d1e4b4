package tasks

import (
	"fmt"
	"time"

	"voyago/config"
	"voyago/models"
	"voyago/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ReminderScheduler enqueues packing reminders off trip-store mutations.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler connects an asynq client to the reminder queue.
func NewReminderScheduler() *ReminderScheduler {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	return &ReminderScheduler{client: client}
}

// OnTripMutation is a trip.Listener. When the destination or start date of a
// trip changes it (re)schedules a packing reminder for the day before
// departure. Trips starting within a day get no reminder.
func (s *ReminderScheduler) OnTripMutation(sessionID string, fields []string, tc *models.TripContext) {
	relevant := false
	for _, f := range fields {
		if f == "startDate" || f == "destination" {
			relevant = true
			break
		}
	}
	if !relevant || tc.StartDate == "" || tc.Destination == "" {
		return
	}

	start, err := time.Parse("2006-01-02", tc.StartDate)
	if err != nil {
		return
	}
	fireAt := start.Add(-24 * time.Hour)
	if fireAt.Before(time.Now()) {
		return
	}

	payload := models.PackingReminderPayload{
		SessionID:   sessionID,
		Destination: tc.Destination,
		StartDate:   tc.StartDate,
		Title:       "Time to pack!",
		Body:        fmt.Sprintf("Your trip to %s starts tomorrow.", tc.Destination),
	}
	task, opts, err := NewPackingReminderTask(payload, fireAt)
	if err != nil {
		utils.GetLogger().Warn("failed to build packing reminder task", zap.Error(err))
		return
	}
	if _, err := s.client.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Warn("failed to enqueue packing reminder", zap.Error(err))
	}
}
