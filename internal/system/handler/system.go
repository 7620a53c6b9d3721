package handler

import (
	"context"
	"net/http"
	"time"

	httputil "hallbooking/pkg/http"
	"hallbooking/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const WelcomeMessage = "WELCOME TO TAMIZH HALLBOOKING"

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type SystemHandler struct {
	db  Pinger
	log *logger.Logger
}

func NewSystemHandler(db Pinger, log *logger.Logger) *SystemHandler {
	return &SystemHandler{
		db:  db,
		log: log,
	}
}

func (h *SystemHandler) Welcome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteText(w, http.StatusOK, WelcomeMessage); err != nil {
		h.log.Error("failed to write text response", "handler", "Welcome", "operation", "WriteText", "error", err)
	}
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *SystemHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.db == nil {
		h.writeUnavailable(w)
		return
	}

	if err := h.db.Ping(ctx, readpref.Primary()); err != nil {
		h.log.Error("Database health check failed",
			"error", err,
			"path", r.URL.Path,
		)
		h.writeUnavailable(w)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Database: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *SystemHandler) writeUnavailable(w http.ResponseWriter) {
	if err := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
		Status:   "unavailable",
		Database: "error",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

// RegisterHealthRoutes mounts the probes, which run outside the full middleware chain.
func (h *SystemHandler) RegisterHealthRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func (h *SystemHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Welcome)
}
