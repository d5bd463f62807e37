// File: services/scheduling/interface.go
package scheduling

import (
	"context"
	"time"

	"slotify/models"
)

// DefaultDurationMinutes is the candidate length used when an availability
// request does not specify one.
const DefaultDurationMinutes = 30

// SchedulingService coordinates bookings and availability against the slot
// store.
type SchedulingService interface {
	// ScheduleMeeting books the requested window. The result is always
	// slot-shaped: a booked slot on success, or a conflict marker
	// (Booked=false, see ConflictTitle) when the window collides with an
	// existing booking. Callers branch on the Booked field.
	ScheduleMeeting(ctx context.Context, req models.ScheduleMeetingRequest) (*models.MeetingSlot, error)
	// GetFreeSlots returns stored free slots, or synthesized hourly
	// candidates when the store holds none.
	GetFreeSlots(ctx context.Context, startAfter *time.Time, durationMinutes int) ([]models.FreeSlot, error)
	// AddPotentialSlot inserts an unbooked slot without any conflict
	// checking. Administrative seeding, not a booking.
	AddPotentialSlot(ctx context.Context, req models.PotentialSlotRequest) (*models.MeetingSlot, error)
}

// ReminderScheduler enqueues a reminder for a confirmed booking. Enqueue
// failures are logged and never fail the booking itself.
type ReminderScheduler interface {
	ScheduleMeetingReminder(slot models.MeetingSlot) error
}

// DefaultSchedulingService is the production implementation. Cache and
// Reminders are optional; when nil the service reads the store directly and
// skips reminders.
type DefaultSchedulingService struct {
	Repo      SlotStore
	Cache     *FreeSlotCache
	Reminders ReminderScheduler
}

// SlotStore is the slice of the repository the service depends on. The Mongo
// repository satisfies it; tests substitute in-memory fakes.
type SlotStore interface {
	Insert(ctx context.Context, slot models.MeetingSlot) (*models.MeetingSlot, error)
	FindExactUnbooked(ctx context.Context, start, end time.Time) (*models.MeetingSlot, error)
	FindOverlappingBooked(ctx context.Context, start, end time.Time) (*models.MeetingSlot, error)
	ListFree(ctx context.Context, after *time.Time) ([]models.MeetingSlot, error)
	UpdateFields(ctx context.Context, id string, fields models.SlotUpdate) (*models.MeetingSlot, error)
}
