package service

import (
	"context"
	"io"
	"testing"

	roomsrepo "huddle/internal/rooms/repository"
	mongotx "huddle/pkg/db/mongo"
	apperrors "huddle/pkg/errors"
	"huddle/pkg/logger"
	"huddle/pkg/model"
)

type mockRoomRepo struct {
	findByIDFn func(ctx context.Context, id string) (*model.Room, error)
	findAllFn  func(ctx context.Context) ([]*model.Room, error)
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id string) (*model.Room, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockRoomRepo) FindAll(ctx context.Context) ([]*model.Room, error) {
	return m.findAllFn(ctx)
}

type mockBookingRepo struct {
	findActiveFn func(ctx context.Context, roomID, bookedBy string) ([]*model.Booking, error)
}

func (m *mockBookingRepo) Insert(context.Context, *model.Booking) error { return nil }

func (m *mockBookingRepo) FindByID(context.Context, string) (*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindActive(ctx context.Context, roomID, bookedBy string) ([]*model.Booking, error) {
	return m.findActiveFn(ctx, roomID, bookedBy)
}

func (m *mockBookingRepo) MarkCanceled(context.Context, string) error { return nil }

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
}

func active(roomID string, start, end int) *model.Booking {
	return &model.Booking{
		RoomID:    roomID,
		BookedBy:  "alice",
		StartHour: start,
		EndHour:   end,
		Status:    model.StatusBooked,
	}
}

func TestListRooms(t *testing.T) {
	rooms := &mockRoomRepo{
		findAllFn: func(context.Context) ([]*model.Room, error) {
			return []*model.Room{
				{ID: "room-a", Name: "Room A"},
				{ID: "room-b", Name: "Room B"},
			}, nil
		},
	}

	fullDay := make([]*model.Booking, 0, 12)
	for h := 0; h < 24; h += 2 {
		fullDay = append(fullDay, active("room-b", h, h+2))
	}
	schedule := append([]*model.Booking{active("room-a", 9, 11)}, fullDay...)

	bookings := &mockBookingRepo{
		findActiveFn: func(_ context.Context, roomID, _ string) ([]*model.Booking, error) {
			return schedule, nil
		},
	}

	svc := NewRoomService(rooms, bookings, testLogger())

	summaries, err := svc.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("got %d rooms", len(summaries))
	}

	roomA := summaries[0]
	if roomA.ID != "room-a" || !roomA.Available {
		t.Errorf("room-a summary = %+v, want available", roomA)
	}
	if len(roomA.BookedSlots) != 1 || roomA.BookedSlots[0].StartTime != "09:00" || roomA.BookedSlots[0].EndTime != "11:00" {
		t.Errorf("room-a slots = %+v", roomA.BookedSlots)
	}

	roomB := summaries[1]
	if roomB.Available {
		t.Errorf("fully booked room-b reported available")
	}
	if len(roomB.BookedSlots) != 12 {
		t.Errorf("room-b slots = %d, want 12", len(roomB.BookedSlots))
	}
}

func TestGetRoom(t *testing.T) {
	rooms := &mockRoomRepo{
		findByIDFn: func(_ context.Context, id string) (*model.Room, error) {
			if id != "room-a" {
				return nil, roomsrepo.ErrNotFound
			}
			return &model.Room{ID: "room-a", Name: "Room A"}, nil
		},
	}
	bookings := &mockBookingRepo{
		findActiveFn: func(_ context.Context, roomID, _ string) ([]*model.Booking, error) {
			if roomID != "room-a" {
				t.Errorf("schedule requested for %q", roomID)
			}
			return nil, nil
		},
	}

	svc := NewRoomService(rooms, bookings, testLogger())

	summary, err := svc.GetRoom(context.Background(), "room-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.Available || len(summary.BookedSlots) != 0 {
		t.Errorf("empty room summary = %+v", summary)
	}

	_, err = svc.GetRoom(context.Background(), "room-z")
	if err == nil {
		t.Fatal("expected not found")
	}
	if appErr := apperrors.AsAppError(err); appErr.Code != apperrors.CodeNotFound {
		t.Errorf("error code = %s", appErr.Code)
	}
}
