// File: services/scheduling/coordinator.go
package scheduling

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	slotRepo "slotify/database/repository/slot"
	"slotify/models"
	"slotify/utils"
)

// ConflictTitle marks a schedule response that was refused because the
// requested window collides with an existing booking.
const ConflictTitle = "Conflicting Meeting"

const conflictDescription = "Cannot book this slot due to an existing meeting."

// ScheduleMeeting books the requested window in three stages: claim an exact
// unbooked slot, refuse on overlap with a booked one, otherwise create a new
// booked slot. The claim is a single guarded update keyed on the slot still
// being unbooked, so two concurrent requests for the same window cannot both
// reuse it.
func (s *DefaultSchedulingService) ScheduleMeeting(ctx context.Context, req models.ScheduleMeetingRequest) (*models.MeetingSlot, error) {
	logger := utils.GetLogger()
	start, end := req.StartTime.UTC(), req.EndTime.UTC()

	existing, err := s.Repo.FindExactUnbooked(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	lostClaim := false
	if existing != nil {
		claimed, err := s.Repo.UpdateFields(ctx, existing.ID, models.SlotUpdate{
			Title:       req.Title,
			Description: req.Description,
			Name:        req.Name,
			PhoneNumber: req.PhoneNumber,
			Booked:      true,
		})
		switch {
		case err == nil:
			logger.Info("Reused existing slot for booking",
				zap.String("slotID", claimed.ID),
				zap.Time("start", claimed.StartTime))
			s.afterWrite(ctx, *claimed)
			return claimed, nil
		case errors.Is(err, slotRepo.ErrNotFound):
			// The slot was claimed or removed between the lookup and the
			// guarded update. A concurrent booking shows up as a conflict
			// below; a genuinely missing record is an inconsistency.
			lostClaim = true
		default:
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	overlapping, err := s.Repo.FindOverlappingBooked(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if overlapping != nil {
		// Structured refusal: slot-shaped, Booked=false, carrying the
		// existing booking's window and contact fields. Nothing is written.
		return &models.MeetingSlot{
			ID:          overlapping.ID,
			Title:       ConflictTitle,
			Description: conflictDescription,
			Name:        overlapping.Name,
			PhoneNumber: overlapping.PhoneNumber,
			StartTime:   overlapping.StartTime,
			EndTime:     overlapping.EndTime,
			Booked:      false,
		}, nil
	}

	if lostClaim {
		logger.Error("Slot vanished between lookup and claim",
			zap.String("slotID", existing.ID))
		return nil, ErrSlotVanished
	}

	created, err := s.Repo.Insert(ctx, models.MeetingSlot{
		Title:       req.Title,
		Description: req.Description,
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		StartTime:   start,
		EndTime:     end,
		Booked:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	logger.Info("Created new booked slot",
		zap.String("slotID", created.ID),
		zap.Time("start", created.StartTime))
	s.afterWrite(ctx, *created)
	return created, nil
}

// afterWrite runs the side effects of a successful booking or claim: the
// availability cache is stale, and a reminder is due before the meeting.
func (s *DefaultSchedulingService) afterWrite(ctx context.Context, slot models.MeetingSlot) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx)
	}
	if s.Reminders != nil && slot.Booked {
		if err := s.Reminders.ScheduleMeetingReminder(slot); err != nil {
			utils.GetLogger().Warn("Failed to schedule meeting reminder",
				zap.String("slotID", slot.ID), zap.Error(err))
		}
	}
}
