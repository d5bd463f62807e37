package scheduling

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	slotRepo "slotify/database/repository/slot"
	"slotify/models"
)

// fakeSlotStore is an in-memory SlotStore mirroring the Mongo repository's
// semantics, including the three-clause overlap test with its exact boundary
// inclusions. All operations are atomic under one mutex, so it also stands in
// for the store-side atomicity the guarded update relies on.
type fakeSlotStore struct {
	mu            sync.Mutex
	slots         []models.MeetingSlot
	overlapChecks int
}

func newFakeSlotStore(seed ...models.MeetingSlot) *fakeSlotStore {
	s := &fakeSlotStore{}
	for _, slot := range seed {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		s.slots = append(s.slots, slot)
	}
	return s
}

// bookedOverlaps reproduces the repository's overlap filter against a stored
// slot: (a) stored start inside candidate, (b) stored end inside candidate,
// (c) stored window contains candidate.
func bookedOverlaps(slot models.MeetingSlot, start, end time.Time) bool {
	s, e := slot.StartTime, slot.EndTime
	a := s.Before(end) && !s.Before(start)
	b := e.After(start) && !e.After(end)
	c := !s.After(start) && !e.Before(end)
	return a || b || c
}

func (f *fakeSlotStore) Insert(_ context.Context, slot models.MeetingSlot) (*models.MeetingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	f.slots = append(f.slots, slot)
	out := slot
	return &out, nil
}

func (f *fakeSlotStore) FindExactUnbooked(_ context.Context, start, end time.Time) (*models.MeetingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, slot := range f.slots {
		if !slot.Booked && slot.StartTime.Equal(start) && slot.EndTime.Equal(end) {
			out := slot
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotStore) FindOverlappingBooked(_ context.Context, start, end time.Time) (*models.MeetingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.overlapChecks++
	for _, slot := range f.slots {
		if slot.Booked && bookedOverlaps(slot, start, end) {
			out := slot
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotStore) ListFree(_ context.Context, after *time.Time) ([]models.MeetingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var free []models.MeetingSlot
	for _, slot := range f.slots {
		if slot.Booked {
			continue
		}
		if after != nil && slot.StartTime.Before(*after) {
			continue
		}
		free = append(free, slot)
	}
	sort.Slice(free, func(i, j int) bool { return free[i].StartTime.Before(free[j].StartTime) })
	return free, nil
}

func (f *fakeSlotStore) UpdateFields(_ context.Context, id string, fields models.SlotUpdate) (*models.MeetingSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.slots {
		if f.slots[i].ID != id {
			continue
		}
		if fields.Booked && f.slots[i].Booked {
			// The claim guard: a booked slot cannot be claimed again.
			return nil, slotRepo.ErrNotFound
		}
		f.slots[i].Title = fields.Title
		f.slots[i].Description = fields.Description
		f.slots[i].Name = fields.Name
		f.slots[i].PhoneNumber = fields.PhoneNumber
		f.slots[i].Booked = fields.Booked
		out := f.slots[i]
		return &out, nil
	}
	return nil, slotRepo.ErrNotFound
}

// snapshot copies the current store contents for before/after comparisons.
func (f *fakeSlotStore) snapshot() []models.MeetingSlot {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.MeetingSlot, len(f.slots))
	copy(out, f.slots)
	return out
}

func (f *fakeSlotStore) bookedSlots() []models.MeetingSlot {
	var booked []models.MeetingSlot
	for _, slot := range f.snapshot() {
		if slot.Booked {
			booked = append(booked, slot)
		}
	}
	return booked
}

func ts(hour, min int) time.Time {
	return time.Date(2025, 7, 1, hour, min, 0, 0, time.UTC)
}
