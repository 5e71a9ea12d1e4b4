package tasks

import (
	"encoding/json"
	"time"

	"voyago/models"

	"github.com/hibiken/asynq"
)

const TypePackingReminder = "reminder:packing"

// NewPackingReminderTask builds a delayed asynq task that fires at the
// given instant.
func NewPackingReminderTask(payload models.PackingReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePackingReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
