package scheduling

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	slotRepo "slotify/database/repository/slot"
	"slotify/models"
)

func scheduleReq(start, end time.Time) models.ScheduleMeetingRequest {
	return models.ScheduleMeetingRequest{
		Title:       "Budget Review",
		Description: "Q3 budget",
		Name:        "Alice",
		PhoneNumber: "555-0100",
		StartTime:   start,
		EndTime:     end,
	}
}

func TestScheduleMeetingReusesExactUnbookedSlot(t *testing.T) {
	seeded := models.MeetingSlot{
		ID:        "slot-a",
		Title:     "Team Sync",
		StartTime: ts(9, 0),
		EndTime:   ts(9, 30),
		Booked:    false,
	}
	store := newFakeSlotStore(seeded)
	svc := &DefaultSchedulingService{Repo: store}

	got, err := svc.ScheduleMeeting(context.Background(), scheduleReq(ts(9, 0), ts(9, 30)))
	require.NoError(t, err)

	// Exact-match reuse keeps the identifier and claims the slot in place.
	assert.Equal(t, "slot-a", got.ID)
	assert.True(t, got.Booked)
	assert.Equal(t, "Budget Review", got.Title)
	assert.Equal(t, "Alice", got.Name)

	assert.Len(t, store.snapshot(), 1, "reuse must not create a second slot")
}

func TestScheduleMeetingConflictDoesNotMutate(t *testing.T) {
	booked := models.MeetingSlot{
		ID:          "slot-b",
		Title:       "Client Call",
		Name:        "Client X",
		PhoneNumber: "123-456-7890",
		StartTime:   ts(10, 0),
		EndTime:     ts(10, 30),
		Booked:      true,
	}
	store := newFakeSlotStore(booked)
	before := store.snapshot()
	svc := &DefaultSchedulingService{Repo: store}

	got, err := svc.ScheduleMeeting(context.Background(), scheduleReq(ts(10, 15), ts(10, 45)))
	require.NoError(t, err)

	// The refusal is slot-shaped, unbooked, and carries the existing
	// booking's window and contact fields, not the requested ones.
	assert.False(t, got.Booked)
	assert.Equal(t, ConflictTitle, got.Title)
	assert.Equal(t, "slot-b", got.ID)
	assert.Equal(t, ts(10, 0), got.StartTime)
	assert.Equal(t, ts(10, 30), got.EndTime)
	assert.Equal(t, "Client X", got.Name)
	assert.Equal(t, "123-456-7890", got.PhoneNumber)

	assert.Equal(t, before, store.snapshot(), "conflict path must not write")
}

func TestScheduleMeetingCreatesWhenNoMatchNoOverlap(t *testing.T) {
	free := models.MeetingSlot{
		ID:        "slot-c",
		Title:     "Project Planning",
		StartTime: ts(11, 0),
		EndTime:   ts(11, 30),
		Booked:    false,
	}
	store := newFakeSlotStore(free)
	svc := &DefaultSchedulingService{Repo: store}

	got, err := svc.ScheduleMeeting(context.Background(), scheduleReq(ts(12, 0), ts(12, 30)))
	require.NoError(t, err)

	assert.True(t, got.Booked)
	assert.NotEmpty(t, got.ID)
	assert.NotEqual(t, "slot-c", got.ID)

	slots := store.snapshot()
	require.Len(t, slots, 2)
	for _, slot := range slots {
		if slot.ID == "slot-c" {
			assert.False(t, slot.Booked, "unrelated free slot must stay free")
		}
	}
}

func TestScheduleMeetingSecondIdenticalRequestConflicts(t *testing.T) {
	store := newFakeSlotStore(models.MeetingSlot{
		ID:        "slot-a",
		Title:     "Team Sync",
		StartTime: ts(9, 0),
		EndTime:   ts(9, 30),
	})
	svc := &DefaultSchedulingService{Repo: store}

	first, err := svc.ScheduleMeeting(context.Background(), scheduleReq(ts(9, 0), ts(9, 30)))
	require.NoError(t, err)
	require.True(t, first.Booked)

	second, err := svc.ScheduleMeeting(context.Background(), scheduleReq(ts(9, 0), ts(9, 30)))
	require.NoError(t, err)
	assert.False(t, second.Booked)
	assert.Equal(t, ConflictTitle, second.Title)
	assert.Equal(t, first.ID, second.ID)
}

// No sequence of bookings may leave two booked slots overlapping per the
// conflict-detection test.
func TestBookedSlotsNeverOverlap(t *testing.T) {
	store := newFakeSlotStore(
		models.MeetingSlot{ID: "s1", StartTime: ts(9, 0), EndTime: ts(9, 30)},
		models.MeetingSlot{ID: "s2", StartTime: ts(10, 0), EndTime: ts(10, 30), Booked: true},
	)
	svc := &DefaultSchedulingService{Repo: store}

	windows := []struct{ start, end time.Time }{
		{ts(9, 0), ts(9, 30)},   // reuse
		{ts(9, 15), ts(9, 45)},  // overlaps the reused slot
		{ts(10, 15), ts(10, 45)}, // overlaps the seeded booking
		{ts(11, 0), ts(11, 30)}, // fresh
		{ts(11, 0), ts(11, 30)}, // duplicate of fresh
		{ts(8, 30), ts(9, 5)},   // leading overlap
		{ts(13, 0), ts(14, 0)},  // fresh, longer
		{ts(13, 30), ts(13, 45)}, // contained in previous
	}
	for _, w := range windows {
		_, err := svc.ScheduleMeeting(context.Background(), scheduleReq(w.start, w.end))
		require.NoError(t, err)
	}

	booked := store.bookedSlots()
	for i := 0; i < len(booked); i++ {
		for j := i + 1; j < len(booked); j++ {
			assert.Falsef(t, bookedOverlaps(booked[i], booked[j].StartTime, booked[j].EndTime),
				"booked slots %s and %s overlap", booked[i].ID, booked[j].ID)
		}
	}
}

func TestConcurrentExactRequestsOnlyOneWins(t *testing.T) {
	store := newFakeSlotStore(models.MeetingSlot{
		ID:        "contested",
		Title:     "Open Slot",
		StartTime: ts(9, 0),
		EndTime:   ts(9, 30),
	})
	svc := &DefaultSchedulingService{Repo: store}

	const workers = 8
	results := make([]*models.MeetingSlot, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := svc.ScheduleMeeting(context.Background(), scheduleReq(ts(9, 0), ts(9, 30)))
			assert.NoError(t, err)
			results[i] = got
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, got := range results {
		require.NotNil(t, got)
		if got.Booked {
			wins++
			assert.Equal(t, "contested", got.ID)
		} else {
			assert.Equal(t, ConflictTitle, got.Title)
		}
	}
	assert.Equal(t, 1, wins, "exactly one claim may succeed")
	assert.Len(t, store.snapshot(), 1)
}

// mockSlotStore drives the error paths.
type mockSlotStore struct{ mock.Mock }

func (m *mockSlotStore) Insert(ctx context.Context, slot models.MeetingSlot) (*models.MeetingSlot, error) {
	args := m.Called(ctx, slot)
	if s, ok := args.Get(0).(*models.MeetingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotStore) FindExactUnbooked(ctx context.Context, start, end time.Time) (*models.MeetingSlot, error) {
	args := m.Called(ctx, start, end)
	if s, ok := args.Get(0).(*models.MeetingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotStore) FindOverlappingBooked(ctx context.Context, start, end time.Time) (*models.MeetingSlot, error) {
	args := m.Called(ctx, start, end)
	if s, ok := args.Get(0).(*models.MeetingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotStore) ListFree(ctx context.Context, after *time.Time) ([]models.MeetingSlot, error) {
	args := m.Called(ctx, after)
	if s, ok := args.Get(0).([]models.MeetingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSlotStore) UpdateFields(ctx context.Context, id string, fields models.SlotUpdate) (*models.MeetingSlot, error) {
	args := m.Called(ctx, id, fields)
	if s, ok := args.Get(0).(*models.MeetingSlot); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestScheduleMeetingStoreUnreachable(t *testing.T) {
	store := &mockSlotStore{}
	store.On("FindExactUnbooked", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))
	svc := &DefaultSchedulingService{Repo: store}

	_, err := svc.ScheduleMeeting(context.Background(), scheduleReq(ts(9, 0), ts(9, 30)))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestScheduleMeetingSlotVanished(t *testing.T) {
	matched := &models.MeetingSlot{ID: "ghost", StartTime: ts(9, 0), EndTime: ts(9, 30)}
	store := &mockSlotStore{}
	store.On("FindExactUnbooked", mock.Anything, mock.Anything, mock.Anything).Return(matched, nil)
	store.On("UpdateFields", mock.Anything, "ghost", mock.Anything).Return(nil, slotRepo.ErrNotFound)
	store.On("FindOverlappingBooked", mock.Anything, mock.Anything, mock.Anything).Return(nil, nil)
	svc := &DefaultSchedulingService{Repo: store}

	_, err := svc.ScheduleMeeting(context.Background(), scheduleReq(ts(9, 0), ts(9, 30)))
	assert.ErrorIs(t, err, ErrSlotVanished)
	store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestScheduleMeetingLostClaimToConcurrentBooking(t *testing.T) {
	matched := &models.MeetingSlot{ID: "raced", StartTime: ts(9, 0), EndTime: ts(9, 30)}
	nowBooked := &models.MeetingSlot{
		ID: "raced", Name: "Bob", StartTime: ts(9, 0), EndTime: ts(9, 30), Booked: true,
	}
	store := &mockSlotStore{}
	store.On("FindExactUnbooked", mock.Anything, mock.Anything, mock.Anything).Return(matched, nil)
	store.On("UpdateFields", mock.Anything, "raced", mock.Anything).Return(nil, slotRepo.ErrNotFound)
	store.On("FindOverlappingBooked", mock.Anything, mock.Anything, mock.Anything).Return(nowBooked, nil)
	svc := &DefaultSchedulingService{Repo: store}

	got, err := svc.ScheduleMeeting(context.Background(), scheduleReq(ts(9, 0), ts(9, 30)))
	require.NoError(t, err)
	assert.False(t, got.Booked)
	assert.Equal(t, ConflictTitle, got.Title)
	assert.Equal(t, "Bob", got.Name)
}

func TestAddPotentialSlotInsertsUnbooked(t *testing.T) {
	store := newFakeSlotStore(models.MeetingSlot{
		ID: "busy", StartTime: ts(9, 0), EndTime: ts(9, 30), Booked: true,
	})
	svc := &DefaultSchedulingService{Repo: store}

	// Deliberately overlapping the booked slot: seeding does no conflict
	// checking.
	got, err := svc.AddPotentialSlot(context.Background(), models.PotentialSlotRequest{
		Title:     "Overflow Window",
		StartTime: ts(9, 0),
		EndTime:   ts(9, 30),
	})
	require.NoError(t, err)
	assert.False(t, got.Booked)
	assert.NotEmpty(t, got.ID)
	assert.Len(t, store.snapshot(), 2)
}
