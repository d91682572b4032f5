package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeEventReminder is the task type for a single event reminder.
	TaskTypeEventReminder = "event:reminder"
	// TaskTypeReminderScan is the periodic sweep that schedules reminders
	// for confirmed events approaching their start date.
	TaskTypeReminderScan = "event:reminder_scan"
)

// EventReminderPayload carries everything the reminder needs without a
// database round trip.
type EventReminderPayload struct {
	EventID    int64     `json:"event_id"`
	DocNumber  string    `json:"doc_number"`
	Name       string    `json:"name"`
	ClientName string    `json:"client_name"`
	SpaceName  string    `json:"space_name"`
	StartDate  time.Time `json:"start_date"`
	StartTime  string    `json:"start_time"`
}

// NewEventReminderTask constructs an Asynq task. The task ID pins one
// reminder per event, so the confirm-time schedule and the nightly sweep
// cannot double up.
func NewEventReminderTask(payload EventReminderPayload) (*asynq.Task, []asynq.Option, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{
		asynq.Queue(QueueDefault),
		asynq.TaskID(fmt.Sprintf("%s:%d", TaskTypeEventReminder, payload.EventID)),
	}
	return asynq.NewTask(TaskTypeEventReminder, data), opts, nil
}

// HandleEventReminderTask processes TaskTypeEventReminder tasks.
func HandleEventReminderTask(ctx context.Context, t *asynq.Task) error {
	var payload EventReminderPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder: deliver via SMTP/Mailpit in phase 2.
	fmt.Printf("[jobs] event reminder %s (%s) on %s %s for %s\n",
		payload.DocNumber, payload.Name,
		payload.StartDate.Format("2006-01-02"), payload.StartTime, payload.ClientName)
	return nil
}

// NewReminderScanTask constructs the sweep task registered on the scheduler.
func NewReminderScanTask() *asynq.Task {
	return asynq.NewTask(TaskTypeReminderScan, nil)
}
