package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"huddle/internal/bookings/service"
	apperrors "huddle/pkg/errors"
	"huddle/pkg/hours"
	httputil "huddle/pkg/http"
	"huddle/pkg/logger"
	"huddle/pkg/model"
)

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

// BookRequest carries slot boundaries in wire form ("HH:00"); they are
// parsed to hour integers before reaching the service.
type BookRequest struct {
	Username  string `json:"username"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type BookingView struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"room_id"`
	BookedBy  string    `json:"booked_by"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type AvailabilityView struct {
	FreeStartHours  []string            `json:"free_start_hours"`
	EndHoursByStart map[string][]string `json:"end_hours_by_start"`
}

func toView(b *model.Booking) BookingView {
	return BookingView{
		ID:        b.ID,
		RoomID:    b.RoomID,
		BookedBy:  b.BookedBy,
		StartTime: hours.Format(b.StartHour),
		EndTime:   hours.Format(b.EndHour),
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
	}
}

func (h *BookingHandler) Book(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("id")

	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, "Book", apperrors.InvalidInput("Invalid request body"))
		return
	}

	if req.Username == "" {
		h.writeError(w, "Book", apperrors.InvalidInput("username is required"))
		return
	}

	startHour, err := hours.Parse(req.StartTime)
	if err != nil {
		h.writeError(w, "Book", apperrors.InvalidRange(err.Error()))
		return
	}
	endHour, err := hours.Parse(req.EndTime)
	if err != nil {
		h.writeError(w, "Book", apperrors.InvalidRange(err.Error()))
		return
	}

	booking, err := h.service.Create(r.Context(), roomID, req.Username, startHour, endHour)
	if err != nil {
		h.writeError(w, "Book", err)
		return
	}

	if err := httputil.WriteCreated(w, toView(booking)); err != nil {
		h.log.Error("failed to write created response", "handler", "Book", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	bookingID := ps.ByName("id")

	requester := r.Header.Get("X-User")
	if requester == "" {
		h.writeError(w, "Cancel", apperrors.InvalidInput("X-User header is required"))
		return
	}
	isAdmin := r.Header.Get("X-Admin") == "true"

	if err := h.service.Cancel(r.Context(), bookingID, requester, isAdmin); err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	filter := service.ListFilter{
		RoomID:   query.Get("room_id"),
		BookedBy: query.Get("booked_by"),
	}

	bookings, err := h.service.ListActive(r.Context(), filter)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, toView(b))
	}

	if err := httputil.WriteSuccess(w, views); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	roomID := ps.ByName("id")

	avail, err := h.service.Availability(r.Context(), roomID)
	if err != nil {
		h.writeError(w, "Availability", err)
		return
	}

	view := AvailabilityView{
		FreeStartHours:  hours.FormatAll(avail.FreeStartHours),
		EndHoursByStart: make(map[string][]string, len(avail.EndHoursByStart)),
	}
	for start, ends := range avail.EndHoursByStart {
		view.EndHoursByStart[hours.Format(start)] = hours.FormatAll(ends)
	}

	if err := httputil.WriteSuccess(w, view); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/rooms/:id/book", h.Book)
	router.GET("/api/v1/rooms/:id/availability", h.Availability)
	router.PUT("/api/v1/bookings/id/:id/cancel", h.Cancel)
	router.GET("/api/v1/bookings", h.List)
}
