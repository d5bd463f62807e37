package models

import "time"

// MeetingSlot represents a single window on the shared calendar. A slot is
// either a pre-seeded "potential" slot (Booked=false) waiting to be claimed,
// or a confirmed booking (Booked=true). The ID is assigned on insert and never
// changes; descriptive fields and the booked flag may be rewritten when an
// unbooked slot is claimed by an exact-match booking.
type MeetingSlot struct {
	ID          string    `bson:"id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Name        string    `bson:"name,omitempty" json:"name,omitempty"`
	PhoneNumber string    `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	StartTime   time.Time `bson:"start_time" json:"start_time"`
	EndTime     time.Time `bson:"end_time" json:"end_time"`
	Booked      bool      `bson:"booked" json:"booked"`
}

// ScheduleMeetingRequest is the payload for booking a meeting. Start and end
// are concrete timestamps; callers resolve natural-language input upstream.
type ScheduleMeetingRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description,omitempty"`
	Name        string    `json:"name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

// PotentialSlotRequest is the payload for seeding an unbooked slot. Same shape
// as a schedule request; the created slot always starts out unbooked.
type PotentialSlotRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description,omitempty"`
	Name        string    `json:"name,omitempty"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

// SlotUpdate carries the descriptive fields and booked flag written when a
// slot is claimed or amended. Start and end times are never updated in place.
type SlotUpdate struct {
	Title       string
	Description string
	Name        string
	PhoneNumber string
	Booked      bool
}

// FreeSlot is the trimmed view returned by availability queries.
type FreeSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}
