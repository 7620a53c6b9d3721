package client

import (
	"net/url"
	"strconv"
)

const bookingsPath = "/bookingroom"

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseUrl string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

// Create submits a booking to the admission check. The answer is plain text.
func (c *BookingClient) Create(body any) (*Response, error) {
	return c.httpClient.POST(bookingsPath, body)
}

func (c *BookingClient) CreateWithIdempotencyKey(body any, key string) (*Response, error) {
	return c.httpClient.POSTWithHeaders(bookingsPath, body, map[string]string{
		"Idempotency-Key": key,
	})
}

// List fetches bookings matching query. A nil query lists everything.
func (c *BookingClient) List(query url.Values) (*Response, error) {
	path := bookingsPath + "/"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.httpClient.GET(path)
}

func (c *BookingClient) DeleteByRoomID(roomID int64) (*Response, error) {
	return c.DeleteByRawRoomID(strconv.FormatInt(roomID, 10))
}

func (c *BookingClient) DeleteByRawRoomID(roomID string) (*Response, error) {
	return c.httpClient.DELETE(bookingsPath + "/" + url.PathEscape(roomID))
}
