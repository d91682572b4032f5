package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/fiesta-events/fiesta-events/internal/events"
)

// ReminderScanJob sweeps confirmed events approaching their start date and
// schedules a reminder for each. Confirm-time scheduling covers the normal
// path; the sweep catches events confirmed before the worker existed or
// whose reminder was lost.
type ReminderScanJob struct {
	repo   events.Repository
	client *Client
	lead   time.Duration
	logger *slog.Logger
}

func NewReminderScanJob(repo events.Repository, client *Client, lead time.Duration, logger *slog.Logger) *ReminderScanJob {
	return &ReminderScanJob{repo: repo, client: client, lead: lead, logger: logger}
}

// HandlerFunc adapts the job to the Asynq mux.
func (j *ReminderScanJob) HandlerFunc() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		return j.Run(ctx)
	}
}

func (j *ReminderScanJob) Run(ctx context.Context) error {
	now := time.Now()
	upcoming, err := j.repo.ListStartingBetween(ctx, now, now.Add(j.lead))
	if err != nil {
		return err
	}
	scheduled := 0
	for _, ev := range upcoming {
		if err := j.client.ScheduleEventReminder(ctx, ev.Event); err != nil {
			j.logger.Error("schedule reminder failed",
				slog.Int64("event_id", ev.ID), slog.Any("error", err))
			continue
		}
		scheduled++
	}
	j.logger.Info("reminder scan complete",
		slog.Int("candidates", len(upcoming)), slog.Int("scheduled", scheduled))
	return nil
}
