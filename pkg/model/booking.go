package model

import (
	"time"
)

type BookingStatus string

const (
	StatusBooked   BookingStatus = "booked"
	StatusCanceled BookingStatus = "canceled"
)

// Booking is one reservation attempt and its lifecycle. Records are
// append-only: a cancellation flips Status to canceled, nothing is ever
// deleted, and canceled is terminal.
type Booking struct {
	ID        string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	RoomID    string        `json:"room_id" bson:"room_id" validate:"required"`
	BookedBy  string        `json:"booked_by" bson:"booked_by" validate:"required,min=1,max=100"`
	StartHour int           `json:"start_hour" bson:"start_hour" validate:"min=0,max=23"`
	EndHour   int           `json:"end_hour" bson:"end_hour" validate:"min=1,max=24"`
	Status    BookingStatus `json:"status" bson:"status" validate:"required,oneof=booked canceled"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
}

// Active reports whether the record still occupies its hour window.
func (b *Booking) Active() bool {
	return b.Status == StatusBooked
}

// Covers reports whether hour h falls inside the record's [StartHour, EndHour)
// window.
func (b *Booking) Covers(h int) bool {
	return b.StartHour <= h && h < b.EndHour
}

// Overlaps reports whether the half-open windows of two records intersect.
func (b *Booking) Overlaps(startHour, endHour int) bool {
	return b.StartHour < endHour && startHour < b.EndHour
}
