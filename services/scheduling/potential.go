// File: services/scheduling/potential.go
package scheduling

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"slotify/models"
	"slotify/utils"
)

// AddPotentialSlot inserts an unbooked slot verbatim. There is deliberately no
// conflict checking here: this is the administrative seeding operation, not a
// booking, and seeded windows are allowed to coexist with anything.
func (s *DefaultSchedulingService) AddPotentialSlot(ctx context.Context, req models.PotentialSlotRequest) (*models.MeetingSlot, error) {
	created, err := s.Repo.Insert(ctx, models.MeetingSlot{
		Title:       req.Title,
		Description: req.Description,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		StartTime:   req.StartTime.UTC(),
		EndTime:     req.EndTime.UTC(),
		Booked:      false,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	utils.GetLogger().Info("Added potential slot",
		zap.String("slotID", created.ID),
		zap.Time("start", created.StartTime))

	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
	return created, nil
}
