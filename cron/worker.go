package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"slotify/config"
	"slotify/models"
)

const TypeMeetingReminder = "reminder:meeting"

func queueRedisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// ReminderScheduler enqueues meeting reminders on the asynq queue.
type ReminderScheduler struct {
	client *asynq.Client
	lead   time.Duration
}

// NewReminderScheduler builds a scheduler from the application config.
func NewReminderScheduler() *ReminderScheduler {
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	return &ReminderScheduler{
		client: asynq.NewClient(queueRedisOpts()),
		lead:   lead,
	}
}

// ScheduleMeetingReminder enqueues a reminder task due ahead of the meeting
// start. Meetings starting within the lead window get no reminder.
func (s *ReminderScheduler) ScheduleMeetingReminder(slot models.MeetingSlot) error {
	fireAt := slot.StartTime.Add(-s.lead)
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(models.ReminderPayload{
		SlotID:    slot.ID,
		Title:     slot.Title,
		Name:      slot.Name,
		StartTime: slot.StartTime,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	task := asynq.NewTask(TypeMeetingReminder, payload)
	if _, err := s.client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue reminder for slot %s: %w", slot.ID, err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker() {
	srv := asynq.NewServer(
		queueRedisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeMeetingReminder, handleReminderTask)

	go func() {
		log.Println("[ReminderWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Println("[ReminderWorker] Max retry attempts reached; reminders disabled.")
					return
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(ctx context.Context, task *asynq.Task) error {
	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		log.Printf("[ReminderHandler] Invalid payload: %v", err)
		return err
	}

	// Delivery channel (push, mail) is upstream's concern; the worker logs
	// the due reminder for the agent layer to pick up.
	log.Printf("[ReminderHandler] Meeting %q (slot %s) starts at %s for %s",
		p.Title, p.SlotID, p.StartTime.Format(time.RFC3339), p.Name)
	return nil
}
