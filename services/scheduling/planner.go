// File: services/scheduling/planner.go
package scheduling

import (
	"context"
	"fmt"
	"time"

	"slotify/models"
)

const (
	maxSynthesizedSlots  = 5
	maxSynthesisAttempts = 20
)

// GetFreeSlots returns the stored free slots starting at or after startAfter.
// When the store holds none, it synthesizes up to five hourly candidates that
// do not collide with any booked slot. The attempt cap bounds query volume on
// a densely booked calendar, so the result may legitimately hold fewer than
// five slots.
func (s *DefaultSchedulingService) GetFreeSlots(ctx context.Context, startAfter *time.Time, durationMinutes int) ([]models.FreeSlot, error) {
	if durationMinutes <= 0 {
		durationMinutes = DefaultDurationMinutes
	}

	if s.Cache != nil {
		if cached, ok := s.Cache.Get(ctx, startAfter, durationMinutes); ok {
			return cached, nil
		}
	}

	stored, err := s.Repo.ListFree(ctx, startAfter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if len(stored) > 0 {
		free := make([]models.FreeSlot, len(stored))
		for i, slot := range stored {
			free[i] = models.FreeSlot{StartTime: slot.StartTime, EndTime: slot.EndTime}
		}
		s.cacheResult(ctx, startAfter, durationMinutes, free)
		return free, nil
	}

	free, err := s.synthesize(ctx, startAfter, durationMinutes)
	if err != nil {
		return nil, err
	}
	s.cacheResult(ctx, startAfter, durationMinutes, free)
	return free, nil
}

// synthesize proposes candidate windows on an hourly stride, starting from the
// next whole hour, keeping only those that do not overlap a booked slot.
func (s *DefaultSchedulingService) synthesize(ctx context.Context, startAfter *time.Time, durationMinutes int) ([]models.FreeSlot, error) {
	base := time.Now().UTC()
	if startAfter != nil {
		base = startAfter.UTC()
	}
	base = roundUpToHour(base)

	free := make([]models.FreeSlot, 0, maxSynthesizedSlots)
	for attempts := 0; len(free) < maxSynthesizedSlots && attempts < maxSynthesisAttempts; attempts++ {
		candidateStart := base.Add(time.Duration(attempts) * time.Hour)
		candidateEnd := candidateStart.Add(time.Duration(durationMinutes) * time.Minute)

		overlapping, err := s.Repo.FindOverlappingBooked(ctx, candidateStart, candidateEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		if overlapping == nil {
			free = append(free, models.FreeSlot{StartTime: candidateStart, EndTime: candidateEnd})
		}
	}
	return free, nil
}

func (s *DefaultSchedulingService) cacheResult(ctx context.Context, startAfter *time.Time, durationMinutes int, free []models.FreeSlot) {
	if s.Cache != nil {
		s.Cache.Set(ctx, startAfter, durationMinutes, free)
	}
}

// roundUpToHour truncates to the whole hour, advancing one hour when the
// minute component is non-zero.
func roundUpToHour(t time.Time) time.Time {
	rounded := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	if t.Minute() > 0 {
		rounded = rounded.Add(time.Hour)
	}
	return rounded
}
