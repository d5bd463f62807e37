// File: database/repository/slot/seed.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"slotify/models"
)

// SeedInitialSlots populates the demo calendar on first run. It only writes
// when the collection is empty, so restarting the service never duplicates
// data. Runs during startup, never from a request path.
func (r *mongoSlotRepo) SeedInitialSlots(ctx context.Context) error {
	count, err := r.CountAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing slots: %w", err)
	}
	if count > 0 {
		return nil
	}

	initial := []models.MeetingSlot{
		{
			Title:       "Team Sync",
			Description: "Weekly team synchronization",
			Name:        "Dev Team",
			PhoneNumber: "N/A",
			StartTime:   time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC),
			Booked:      false,
		},
		{
			Title:       "Client Call",
			Description: "Follow-up with Client X",
			Name:        "Client X",
			PhoneNumber: "123-456-7890",
			StartTime:   time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC),
			Booked:      true,
		},
		{
			Title:       "Project Planning",
			Description: "Plan next sprint",
			Name:        "Project Alpha",
			PhoneNumber: "N/A",
			StartTime:   time.Date(2025, 7, 1, 11, 0, 0, 0, time.UTC),
			EndTime:     time.Date(2025, 7, 1, 11, 30, 0, 0, time.UTC),
			Booked:      false,
		},
	}

	for _, slot := range initial {
		if _, err := r.Insert(ctx, slot); err != nil {
			return fmt.Errorf("failed to seed slot %q: %w", slot.Title, err)
		}
	}
	return nil
}
