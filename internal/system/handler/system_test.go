package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hallbooking/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context, *readpref.ReadPref) error {
	return p.err
}

func newRouter(h *SystemHandler) *httprouter.Router {
	router := httprouter.New()
	h.RegisterRoutes(router)
	h.RegisterHealthRoutes(router)
	return router
}

func serve(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestWelcome(t *testing.T) {
	rec := serve(newRouter(NewSystemHandler(fakePinger{}, logger.Nop())), "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "WELCOME TO TAMIZH HALLBOOKING", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestHealth(t *testing.T) {
	rec := serve(newRouter(NewSystemHandler(nil, logger.Nop())), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestReady(t *testing.T) {
	tests := []struct {
		name   string
		db     Pinger
		status int
	}{
		{name: "database reachable", db: fakePinger{}, status: http.StatusOK},
		{name: "database down", db: fakePinger{err: errors.New("no reachable servers")}, status: http.StatusServiceUnavailable},
		{name: "no database", db: nil, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newRouter(NewSystemHandler(tt.db, logger.Nop())), "/ready")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
