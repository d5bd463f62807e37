// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"errors"
	"time"

	"slotify/database"
	"slotify/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned by guarded writes when no document matched; the
// record either vanished or was claimed concurrently.
var ErrNotFound = errors.New("slot not found")

// SlotRepository is the single source of truth for meeting slots.
type SlotRepository interface {
	// Insert persists a new slot, assigning a UUID if the ID is empty.
	Insert(ctx context.Context, slot models.MeetingSlot) (*models.MeetingSlot, error)
	// FindExactUnbooked returns the unbooked slot whose window matches start
	// and end exactly, or nil when there is none.
	FindExactUnbooked(ctx context.Context, start, end time.Time) (*models.MeetingSlot, error)
	// FindOverlappingBooked returns one booked slot whose window overlaps
	// [start, end) per the conflict-detection filter, or nil.
	FindOverlappingBooked(ctx context.Context, start, end time.Time) (*models.MeetingSlot, error)
	// ListFree returns all unbooked slots, optionally restricted to those
	// starting at or after the given instant, ascending by start time.
	ListFree(ctx context.Context, after *time.Time) ([]models.MeetingSlot, error)
	// UpdateFields rewrites the descriptive fields and booked flag of the
	// slot with the given ID in a single conditional update. When the update
	// sets Booked, the write only applies while the slot is still unbooked,
	// so two claims for the same slot cannot both succeed. Returns
	// ErrNotFound when nothing matched.
	UpdateFields(ctx context.Context, id string, fields models.SlotUpdate) (*models.MeetingSlot, error)
	// CountAll reports the total number of stored slots.
	CountAll(ctx context.Context) (int64, error)
	// EnsureIndexes creates the collection's indexes.
	EnsureIndexes() error
	// SeedInitialSlots inserts the demo calendar when the collection is empty.
	SeedInitialSlots(ctx context.Context) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a SlotRepository backed by the meeting_slots
// collection. database.InitDB must have run first.
func NewMongoSlotRepo() SlotRepository {
	db := database.MongoClient.Database(database.Name)
	return &mongoSlotRepo{
		coll: db.Collection("meeting_slots"),
	}
}
