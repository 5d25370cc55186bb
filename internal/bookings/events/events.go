package events

import (
	"context"
	"time"

	"huddle/pkg/hours"
	"huddle/pkg/kafka"
	"huddle/pkg/logger"
	"huddle/pkg/model"
)

const (
	TypeBookingCreated  = "booking.created"
	TypeBookingCanceled = "booking.canceled"
)

// BookingEvent is the payload published for every committed ledger mutation.
// Hours are rendered in the same "HH:00" form the HTTP boundary uses.
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  string    `json:"booking_id"`
	RoomID     string    `json:"room_id"`
	BookedBy   string    `json:"booked_by"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits booking lifecycle events after a mutation has committed.
// Publishing happens outside the room's critical section and must never fail
// the request that triggered it.
type Publisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingCanceled(ctx context.Context, booking *model.Booking)
}

type kafkaPublisher struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, source string, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		log:      log,
	}
}

func (p *kafkaPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCreated, booking)
}

func (p *kafkaPublisher) BookingCanceled(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, TypeBookingCanceled, booking)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, booking *model.Booking) {
	event := BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		BookedBy:   booking.BookedBy,
		StartTime:  hours.Format(booking.StartHour),
		EndTime:    hours.Format(booking.EndHour),
		Status:     string(booking.Status),
		OccurredAt: time.Now().UTC(),
	}

	// Key by room id so consumers see each room's history in order.
	msg := kafka.NewMessage().
		WithKey(booking.RoomID).
		WithValue(event).
		WithEventType(eventType).
		WithSource(p.source).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"room_id", booking.RoomID,
			"error", err,
		)
	}
}

type nopPublisher struct{}

// NewNopPublisher is used when event publishing is disabled.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) BookingCreated(context.Context, *model.Booking)  {}
func (nopPublisher) BookingCanceled(context.Context, *model.Booking) {}
