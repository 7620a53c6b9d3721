package handler

import (
	"net/http"

	"hallbooking/internal/facilities/service"
	apperrors "hallbooking/pkg/errors"
	"hallbooking/pkg/filter"
	httputil "hallbooking/pkg/http"
	"hallbooking/pkg/logger"
	"hallbooking/pkg/model"
	"hallbooking/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
)

type FacilityHandler struct {
	service service.FacilityService
	log     *logger.Logger
}

func NewFacilityHandler(service service.FacilityService, log *logger.Logger) *FacilityHandler {
	return &FacilityHandler{
		service: service,
		log:     log,
	}
}

func (h *FacilityHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

// GetByRoomID answers 200 with a message body when nothing matches.
func (h *FacilityHandler) GetByRoomID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	doc, err := h.service.GetByRoomID(r.Context(), ps.ByName("room_id"))
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			if err := httputil.WriteMessage(w, model.FacilityNotFoundMessage); err != nil {
				h.log.Error("failed to write message response", "handler", "GetByRoomID", "operation", "WriteMessage", "error", err)
			}
			return
		}
		h.writeError(w, "GetByRoomID", err)
		return
	}

	if err := httputil.WriteSuccess(w, doc); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByRoomID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FacilityHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	doc, err := sanitizer.DecodeDocument(r.Body)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	result, err := h.service.Create(r.Context(), doc)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "Create", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FacilityHandler) DeleteByRoomID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	result, err := h.service.DeleteByRoomID(r.Context(), ps.ByName("room_id"))
	if err != nil {
		h.writeError(w, "DeleteByRoomID", err)
		return
	}

	if err := httputil.WriteSuccess(w, result); err != nil {
		h.log.Error("failed to write success response", "handler", "DeleteByRoomID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *FacilityHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *FacilityHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/hallbooking/", h.List)
	router.POST("/hallbooking/", h.Create)
	router.GET("/hallbooking/:room_id", h.GetByRoomID)
	router.DELETE("/hallbooking/:room_id", h.DeleteByRoomID)
}
