package models

import "time"

// ReminderPayload is the task body enqueued for a meeting reminder.
type ReminderPayload struct {
	SlotID    string    `json:"slotId"`
	Title     string    `json:"title"`
	Name      string    `json:"name,omitempty"`
	StartTime time.Time `json:"startTime"`
}
