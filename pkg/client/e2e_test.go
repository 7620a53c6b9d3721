package client_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	bookinghandler "hallbooking/internal/bookings/handler"
	bookingrepository "hallbooking/internal/bookings/repository"
	bookingservice "hallbooking/internal/bookings/service"
	"hallbooking/internal/bookings/validator"
	facilityhandler "hallbooking/internal/facilities/handler"
	facilityrepository "hallbooking/internal/facilities/repository"
	facilityservice "hallbooking/internal/facilities/service"
	"hallbooking/pkg/app"
	"hallbooking/pkg/client"
	"hallbooking/pkg/config"
	"hallbooking/pkg/logger"
	"hallbooking/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, policy config.ConflictPolicy) string {
	t.Helper()

	cfg := &config.Config{
		Port:                  "0",
		RateLimitRequests:     1000,
		RateLimitWindow:       time.Minute,
		RequestTimeout:        5 * time.Second,
		IdempotencyTTL:        time.Hour,
		MaxRequestSize:        1 << 20,
		ShutdownTimeout:       time.Second,
		BookingConflictPolicy: policy,
		Log:                   logger.Nop(),
	}

	facilities := facilityservice.NewFacilityService(facilityrepository.NewMemoryFacilityRepository(), nil, cfg)
	bookings := bookingservice.NewBookingService(
		bookingrepository.NewMemoryBookingRepository(),
		validator.NewBookingValidator(cfg.Log),
		nil,
		cfg,
	)

	a := app.NewApplication(cfg)
	a.SetApp(
		facilityhandler.NewFacilityHandler(facilities, cfg.Log),
		bookinghandler.NewBookingHandler(bookings, cfg.Log),
	)

	t.Cleanup(a.Stop)

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	require.NoError(t, client.NewHttpClient(srv.URL).WaitForHealthy(5*time.Second))
	return srv.URL
}

func TestBookingAdmission_IndependentPolicy(t *testing.T) {
	bookings := client.NewBookingClient(startServer(t, config.ConflictIndependent))

	steps := []struct {
		date, roomID int
		wantStatus   int
		wantText     string
	}{
		{1, 5, http.StatusCreated, "Data inserted successfully"},
		{1, 6, http.StatusBadRequest, "Data with the same date already exists"},
		{2, 5, http.StatusBadRequest, "Data with the same room_id already exists"},
		{2, 7, http.StatusCreated, "Data inserted successfully"},
	}

	for _, step := range steps {
		resp, err := bookings.Create(map[string]any{"date": step.date, "room_id": step.roomID})
		require.NoError(t, err)
		assert.Equal(t, step.wantStatus, resp.StatusCode)
		assert.Equal(t, step.wantText, resp.Text())
	}

	resp, err := bookings.List(url.Values{"room_id": {"5"}})
	require.NoError(t, err)
	var docs []model.Document
	require.NoError(t, resp.DecodeJSON(&docs))
	require.Len(t, docs, 1)
	assert.EqualValues(t, 1, docs[0]["date"])

	resp, err = bookings.List(url.Values{"room_id": {"6"}})
	require.NoError(t, err)
	require.NoError(t, resp.DecodeJSON(&docs))
	assert.Empty(t, docs)
}

func TestBookingAdmission_CompoundPolicy(t *testing.T) {
	bookings := client.NewBookingClient(startServer(t, config.ConflictCompound))

	resp, err := bookings.Create(map[string]any{"date": 1, "room_id": 5})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = bookings.Create(map[string]any{"date": 1, "room_id": 6})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = bookings.Create(map[string]any{"date": 1, "room_id": 5})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Data with the same room_id and date already exists", resp.Text())
}

func TestBookingCreate_AnyContentType(t *testing.T) {
	baseURL := startServer(t, config.ConflictIndependent)

	for i, contentType := range []string{"", "application/x-www-form-urlencoded", "text/plain"} {
		body := `{"date":` + strconv.Itoa(i+1) + `,"room_id":` + strconv.Itoa(i+1) + `}`
		req, err := http.NewRequest(http.MethodPost, baseURL+"/bookingroom", strings.NewReader(body))
		require.NoError(t, err)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		text, err := io.ReadAll(resp.Body)
		require.NoError(t, resp.Body.Close())
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode, contentType)
		assert.Equal(t, "Data inserted successfully", string(text), contentType)
	}
}

func TestBookingDelete_FreesRoom(t *testing.T) {
	bookings := client.NewBookingClient(startServer(t, config.ConflictIndependent))

	_, err := bookings.Create(map[string]any{"date": 1, "room_id": 5})
	require.NoError(t, err)

	resp, err := bookings.DeleteByRoomID(5)
	require.NoError(t, err)
	var res model.DeleteResult
	require.NoError(t, resp.DecodeJSON(&res))
	assert.Equal(t, int64(1), res.DeletedCount)

	resp, err = bookings.DeleteByRawRoomID("five")
	require.NoError(t, err)
	require.NoError(t, resp.DecodeJSON(&res))
	assert.Equal(t, int64(0), res.DeletedCount)

	resp, err = bookings.Create(map[string]any{"date": 1, "room_id": 5})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestBookingCreate_IdempotencyKey(t *testing.T) {
	bookings := client.NewBookingClient(startServer(t, config.ConflictIndependent))
	body := map[string]any{"date": 3, "room_id": 9}

	resp, err := bookings.CreateWithIdempotencyKey(body, "retry-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = bookings.CreateWithIdempotencyKey(body, "retry-1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("Idempotent-Replayed"))
}

func TestFacilityLifecycle(t *testing.T) {
	facilities := client.NewFacilityClient(startServer(t, config.ConflictIndependent))

	resp, err := facilities.Create(map[string]any{"room_id": 101, "room_type": "suite", "price_per_hour": 49.5})
	require.NoError(t, err)
	var inserted model.InsertResult
	require.NoError(t, resp.DecodeJSON(&inserted))
	assert.True(t, inserted.Acknowledged)
	assert.NotEmpty(t, inserted.InsertedID)

	resp, err = facilities.List(url.Values{"room_type": {"suite"}, "price_per_hour": {"49.5"}})
	require.NoError(t, err)
	var docs []model.Document
	require.NoError(t, resp.DecodeJSON(&docs))
	require.Len(t, docs, 1)
	assert.Equal(t, inserted.InsertedID, docs[0]["_id"])

	resp, err = facilities.GetByRoomID(101)
	require.NoError(t, err)
	var doc model.Document
	require.NoError(t, resp.DecodeJSON(&doc))
	assert.Equal(t, "suite", doc["room_type"])

	resp, err = facilities.DeleteByRoomID(101)
	require.NoError(t, err)
	var deleted model.DeleteResult
	require.NoError(t, resp.DecodeJSON(&deleted))
	assert.Equal(t, int64(1), deleted.DeletedCount)

	resp, err = facilities.GetByRoomID(101)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, model.FacilityNotFoundMessage, client.GetErrorMessage(resp))
}

func TestFacilityLookups_Sentinel(t *testing.T) {
	facilities := client.NewFacilityClient(startServer(t, config.ConflictIndependent))

	for _, id := range []string{"999", "abc"} {
		resp, err := facilities.GetByRawRoomID(id)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, id)
		assert.JSONEq(t, `{"message":"There is no such facility"}`, string(resp.Body), id)
	}
}

func TestFacilityList_RejectsUnknownFilter(t *testing.T) {
	facilities := client.NewFacilityClient(startServer(t, config.ConflictIndependent))

	resp, err := facilities.List(url.Values{"colour": {"red"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = facilities.CreateRaw([]byte(`"just a string"`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
