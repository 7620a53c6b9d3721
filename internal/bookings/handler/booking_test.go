package handler

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"hallbooking/internal/bookings/repository"
	"hallbooking/internal/bookings/service"
	"hallbooking/internal/bookings/validator"
	"hallbooking/pkg/config"
	"hallbooking/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func newRouter(policy config.ConflictPolicy) *httprouter.Router {
	cfg := &config.Config{Log: logger.Nop(), BookingConflictPolicy: policy}
	svc := service.NewBookingService(
		repository.NewMemoryBookingRepository(),
		validator.NewBookingValidator(cfg.Log),
		nil,
		cfg,
	)

	router := httprouter.New()
	NewBookingHandler(svc, cfg.Log).RegisterRoutes(router)
	return router
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/bookingroom", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(router http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreate_AdmissionScenario(t *testing.T) {
	router := newRouter(config.ConflictIndependent)

	steps := []struct {
		body       string
		wantStatus int
		wantBody   string
	}{
		{`{"date":1,"room_id":5}`, http.StatusCreated, "Data inserted successfully"},
		{`{"date":1,"room_id":6}`, http.StatusBadRequest, "Data with the same date already exists"},
		{`{"date":2,"room_id":5}`, http.StatusBadRequest, "Data with the same room_id already exists"},
		{`{"date":2,"room_id":7}`, http.StatusCreated, "Data inserted successfully"},
	}

	for _, step := range steps {
		rec := post(router, step.body)
		assert.Equal(t, step.wantStatus, rec.Code, step.body)
		assert.Equal(t, step.wantBody, rec.Body.String(), step.body)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	}

	rec := get(router, http.MethodGet, "/bookingroom/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"room_id":5`)
	assert.Contains(t, rec.Body.String(), `"room_id":7`)
	assert.NotContains(t, rec.Body.String(), `"room_id":6`)
}

func TestCreate_CompoundScenario(t *testing.T) {
	router := newRouter(config.ConflictCompound)

	assert.Equal(t, http.StatusCreated, post(router, `{"date":1,"room_id":5}`).Code)
	assert.Equal(t, http.StatusCreated, post(router, `{"date":1,"room_id":6}`).Code)

	rec := post(router, `{"date":1,"room_id":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Data with the same room_id and date already exists", rec.Body.String())
}

func TestCreate_BadBodies(t *testing.T) {
	router := newRouter(config.ConflictIndependent)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{date:1`},
		{name: "array", body: `[1]`},
		{name: "missing room_id", body: `{"date":1}`},
		{name: "fractional date", body: `{"date":1.5,"room_id":5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(router, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, rec.Body.String())
		})
	}

	rec := get(router, http.MethodGet, "/bookingroom/")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreate_RejectsDateBeyondInt64(t *testing.T) {
	router := newRouter(config.ConflictIndependent)

	for i := 0; i < 2; i++ {
		rec := post(router, `{"date":9223372036854775808,"room_id":`+strconv.Itoa(10+i)+`}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "date must be an integer")
	}

	rec := get(router, http.MethodGet, "/bookingroom/")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestList_Filters(t *testing.T) {
	router := newRouter(config.ConflictIndependent)
	post(router, `{"date":1,"room_id":5}`)
	post(router, `{"date":2,"room_id":7}`)

	rec := get(router, http.MethodGet, "/bookingroom/?date=2")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"room_id":7`)
	assert.NotContains(t, rec.Body.String(), `"room_id":5`)

	rec = get(router, http.MethodGet, "/bookingroom/?guest=ann")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = get(router, http.MethodGet, "/bookingroom/?date=tomorrow")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteByRoomID(t *testing.T) {
	router := newRouter(config.ConflictIndependent)
	post(router, `{"date":1,"room_id":5}`)

	rec := get(router, http.MethodDelete, "/bookingroom/5")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, rec.Body.String())

	rec = get(router, http.MethodDelete, "/bookingroom/5")
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":0}`, rec.Body.String())

	assert.Equal(t, http.StatusCreated, post(router, `{"date":1,"room_id":5}`).Code)
}
