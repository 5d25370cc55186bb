package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"huddle/internal/availability"
	bookingserrors "huddle/internal/bookings/errors"
	"huddle/internal/bookings/events"
	"huddle/internal/bookings/repository"
	"huddle/internal/bookings/validator"
	roomsrepo "huddle/internal/rooms/repository"
	"huddle/pkg/config"
	apperrors "huddle/pkg/errors"
	"huddle/pkg/hours"
	"huddle/pkg/model"
)

// ListFilter narrows ListActive to one room, one user, or both.
type ListFilter struct {
	RoomID   string
	BookedBy string
}

// RoomAvailability is the calculator's output for one room: the bookable
// start hours and, for each of them, the legal end hours.
type RoomAvailability struct {
	FreeStartHours  []int
	EndHoursByStart map[int][]int
}

type BookingService interface {
	Create(ctx context.Context, roomID, bookedBy string, startHour, endHour int) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID, requesterID string, requesterIsAdmin bool) error
	ListActive(ctx context.Context, filter ListFilter) ([]*model.Booking, error)
	Availability(ctx context.Context, roomID string) (*RoomAvailability, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	roomRepo  roomsrepo.RoomRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	locks     *roomLocks
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	roomRepo roomsrepo.RoomRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		roomRepo:  roomRepo,
		validator: bookingValidator,
		publisher: publisher,
		locks:     newRoomLocks(),
		cfg:       cfg,
	}
}

// Create validates the requested window and commits it against the room's
// schedule as read at commit time, not the possibly stale view the caller
// selected from. The room lock serializes the read-validate-write sequence
// with every other mutation of the same room.
func (s *bookingService) Create(ctx context.Context, roomID, bookedBy string, startHour, endHour int) (*model.Booking, error) {
	if err := s.validator.ValidateRange(startHour, endHour); err != nil {
		s.cfg.Log.Warn("Booking range validation failed",
			"room_id", roomID,
			"start_hour", startHour,
			"end_hour", endHour,
			"error", err,
		)
		return nil, apperrors.InvalidRange(err.Error())
	}

	booking := &model.Booking{
		RoomID:    roomID,
		BookedBy:  bookedBy,
		StartHour: startHour,
		EndHour:   endHour,
		Status:    model.StatusBooked,
	}

	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return nil, apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}

	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, roomsrepo.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomID)
		}
		return nil, apperrors.Internal("Failed to load room", err)
	}

	if err := s.commitCreate(ctx, booking); err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Booking created",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"booked_by", booking.BookedBy,
		"start_hour", booking.StartHour,
		"end_hour", booking.EndHour,
	)

	// Published after the lock is released; event delivery never holds up
	// or rolls back a committed booking.
	s.publisher.BookingCreated(ctx, booking)

	return booking, nil
}

// commitCreate holds the room lock for exactly the re-validate + insert
// sequence. No external I/O beyond those two repository calls happens inside.
func (s *bookingService) commitCreate(ctx context.Context, booking *model.Booking) error {
	lock := s.locks.forRoom(booking.RoomID)
	lock.Lock()
	defer lock.Unlock()

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		schedule, err := s.repo.FindActive(sessCtx, booking.RoomID, "")
		if err != nil {
			return apperrors.Internal("Failed to load room schedule", err)
		}

		for _, existing := range schedule {
			if existing.Overlaps(booking.StartHour, booking.EndHour) {
				return apperrors.Conflict(fmt.Sprintf(
					"Requested window overlaps an existing booking (%s - %s)",
					hours.Format(existing.StartHour),
					hours.Format(existing.EndHour),
				))
			}
		}

		if err := s.repo.Insert(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		if !apperrors.IsAppError(err) {
			return apperrors.Internal("Failed to commit booking", err)
		}
		return err
	}

	return nil
}

// Cancel flips a record to its terminal state. Only the record's owner or an
// administrator may cancel, and canceling twice is reported as an error, not
// silently absorbed.
func (s *bookingService) Cancel(ctx context.Context, bookingID, requesterID string, requesterIsAdmin bool) error {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return mapLookupError(err, bookingID)
	}

	if !booking.Active() {
		return apperrors.AlreadyCanceled("Booking is already canceled")
	}

	if booking.BookedBy != requesterID && !requesterIsAdmin {
		s.cfg.Log.Warn("Cancellation refused",
			"id", bookingID,
			"booked_by", booking.BookedBy,
			"requester", requesterID,
		)
		return apperrors.Forbidden("Only the booking owner or an administrator can cancel it")
	}

	lock := s.locks.forRoom(booking.RoomID)
	lock.Lock()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Status may have changed since the unlocked read.
		if err := s.repo.MarkCanceled(sessCtx, bookingID); err != nil {
			if errors.Is(err, bookingserrors.ErrAlreadyCanceled) {
				return apperrors.AlreadyCanceled("Booking is already canceled")
			}
			return mapLookupError(err, bookingID)
		}
		return nil
	})
	lock.Unlock()

	if err != nil {
		if !apperrors.IsAppError(err) {
			return apperrors.Internal("Failed to cancel booking", err)
		}
		return err
	}

	booking.Status = model.StatusCanceled
	s.cfg.Log.Info("Booking canceled",
		"id", bookingID,
		"room_id", booking.RoomID,
		"requester", requesterID,
		"admin", requesterIsAdmin,
	)
	s.publisher.BookingCanceled(ctx, booking)

	return nil
}

func (s *bookingService) ListActive(ctx context.Context, filter ListFilter) ([]*model.Booking, error) {
	bookings, err := s.repo.FindActive(ctx, filter.RoomID, filter.BookedBy)
	if err != nil {
		s.cfg.Log.Error("Failed to list active bookings", "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}
	return bookings, nil
}

// Availability reads a fresh active schedule and runs the calculator over
// it. The result is advisory: Create re-validates under the room lock no
// matter what the caller saw here.
func (s *bookingService) Availability(ctx context.Context, roomID string) (*RoomAvailability, error) {
	if _, err := s.roomRepo.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, roomsrepo.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", roomID)
		}
		return nil, apperrors.Internal("Failed to load room", err)
	}

	schedule, err := s.repo.FindActive(ctx, roomID, "")
	if err != nil {
		return nil, apperrors.Internal("Failed to load room schedule", err)
	}

	freeStarts := availability.FreeStartHours(schedule)
	endsByStart := make(map[int][]int, len(freeStarts))
	for _, h := range freeStarts {
		endsByStart[h] = availability.CandidateEndHours(schedule, h)
	}

	return &RoomAvailability{
		FreeStartHours:  freeStarts,
		EndHoursByStart: endsByStart,
	}, nil
}

func mapLookupError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal("Failed to retrieve booking", err)
}
