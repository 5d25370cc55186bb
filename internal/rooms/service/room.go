package service

import (
	"context"
	"errors"

	"huddle/internal/availability"
	bookingrepo "huddle/internal/bookings/repository"
	roomrepo "huddle/internal/rooms/repository"
	apperrors "huddle/pkg/errors"
	"huddle/pkg/hours"
	"huddle/pkg/logger"
	"huddle/pkg/model"
)

// BookedSlot is one active reservation as shown in the catalog, with slot
// boundaries already rendered in wire form.
type BookedSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	BookedBy  string `json:"booked_by"`
}

// RoomSummary projects a room together with its active reservations.
// Available is derived from the ledger on every read, never stored: a room
// with no free start hour left is fully booked for the day.
type RoomSummary struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Available   bool         `json:"available"`
	BookedSlots []BookedSlot `json:"booked_slots"`
}

type RoomService interface {
	ListRooms(ctx context.Context) ([]RoomSummary, error)
	GetRoom(ctx context.Context, id string) (*RoomSummary, error)
}

type roomService struct {
	roomRepo    roomrepo.RoomRepository
	bookingRepo bookingrepo.BookingRepository
	log         *logger.Logger
}

func NewRoomService(roomRepo roomrepo.RoomRepository, bookingRepo bookingrepo.BookingRepository, log *logger.Logger) RoomService {
	return &roomService{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		log:         log,
	}
}

func (s *roomService) ListRooms(ctx context.Context) ([]RoomSummary, error) {
	rooms, err := s.roomRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to list rooms", err)
	}

	active, err := s.bookingRepo.FindActive(ctx, "", "")
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	byRoom := make(map[string][]*model.Booking, len(rooms))
	for _, b := range active {
		byRoom[b.RoomID] = append(byRoom[b.RoomID], b)
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, summarize(room, byRoom[room.ID]))
	}
	return summaries, nil
}

func (s *roomService) GetRoom(ctx context.Context, id string) (*RoomSummary, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, roomrepo.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Room", id)
		}
		return nil, apperrors.Internal("Failed to find room", err)
	}

	schedule, err := s.bookingRepo.FindActive(ctx, id, "")
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	summary := summarize(room, schedule)
	return &summary, nil
}

func summarize(room *model.Room, schedule []*model.Booking) RoomSummary {
	slots := make([]BookedSlot, 0, len(schedule))
	for _, b := range schedule {
		slots = append(slots, BookedSlot{
			StartTime: hours.Format(b.StartHour),
			EndTime:   hours.Format(b.EndHour),
			BookedBy:  b.BookedBy,
		})
	}

	return RoomSummary{
		ID:          room.ID,
		Name:        room.Name,
		Available:   len(availability.FreeStartHours(schedule)) > 0,
		BookedSlots: slots,
	}
}
