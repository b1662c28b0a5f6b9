package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wanderly/models"

	"github.com/hibiken/asynq"
)

const TypeDueReminder = "emi:due-reminder"

// NewDueReminderTask builds an installment due-date reminder task
// fired at the given time.
func NewDueReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeDueReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// Scheduler enqueues reminder tasks onto the asynq queue.
type Scheduler struct {
	Client *asynq.Client
}

func NewScheduler(client *asynq.Client) *Scheduler {
	return &Scheduler{Client: client}
}

// ScheduleDueReminder enqueues a due-date reminder for delivery by
// the background worker.
func (s *Scheduler) ScheduleDueReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	task, opts, err := NewDueReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build due reminder task: %w", err)
	}
	if _, err := s.Client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue due reminder: %w", err)
	}
	return nil
}
