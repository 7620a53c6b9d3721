package handler

import (
	"net/http"

	bookingserrors "hallbooking/internal/bookings/errors"
	"hallbooking/internal/bookings/service"
	apperrors "hallbooking/pkg/errors"
	"hallbooking/pkg/filter"
	httputil "hallbooking/pkg/http"
	"hallbooking/pkg/logger"
	"hallbooking/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
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

// Create answers in plain text: 201 on admission, 400 with the conflict or
// validation message, 500 for anything unexpected.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doc, err := sanitizer.DecodeDocument(r.Body)
	if err != nil {
		h.writeText(w, "Create", err)
		return
	}

	if _, err := h.service.Create(r.Context(), doc); err != nil {
		h.writeText(w, "Create", err)
		return
	}

	if err := httputil.WriteText(w, http.StatusCreated, bookingserrors.MsgInserted); err != nil {
		h.log.Error("failed to write text response", "handler", "Create", "operation", "WriteText", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	f, err := filter.Parse(r.URL.Query(), filter.RoomFields)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	docs, err := h.service.List(r.Context(), f)
	if err != nil {
		h.writeError(w, "List", err)
		return
	}

	if err := httputil.WriteSuccess(w, docs); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) DeleteByRoomID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.DeleteByRoomID(r.Context(), ps.ByName("room_id"))
	if err != nil {
		h.writeError(w, "DeleteByRoomID", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "DeleteByRoomID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeText(w http.ResponseWriter, handler string, err error) {
	appErr := apperrors.AsAppError(err)

	status := appErr.StatusCode()
	message := appErr.Message
	if status == 0 || status >= http.StatusInternalServerError {
		h.log.Error("booking request failed", "handler", handler, "error", err)
		status = http.StatusInternalServerError
		message = bookingserrors.MsgInternal
	}

	if writeErr := httputil.WriteText(w, status, message); writeErr != nil {
		h.log.Error("failed to write text response", "handler", handler, "operation", "WriteText", "error", writeErr)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookingroom", h.Create)
	router.GET("/bookingroom/", h.List)
	router.DELETE("/bookingroom/:room_id", h.DeleteByRoomID)
}
