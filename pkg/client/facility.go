package client

import (
	"net/url"
	"strconv"
)

const facilitiesPath = "/hallbooking/"

type FacilityClient struct {
	httpClient *HttpClient
}

func NewFacilityClient(baseUrl string) *FacilityClient {
	return &FacilityClient{
		httpClient: NewHttpClient(baseUrl),
	}
}

func (c *FacilityClient) Create(body any) (*Response, error) {
	return c.httpClient.POST(facilitiesPath, body)
}

func (c *FacilityClient) CreateRaw(rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw(facilitiesPath, rawBody)
}

func (c *FacilityClient) List(query url.Values) (*Response, error) {
	path := facilitiesPath
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.httpClient.GET(path)
}

func (c *FacilityClient) GetByRoomID(roomID int64) (*Response, error) {
	return c.GetByRawRoomID(strconv.FormatInt(roomID, 10))
}

// GetByRawRoomID sends the path segment unchanged, which lets callers probe
// non-numeric identifiers.
func (c *FacilityClient) GetByRawRoomID(roomID string) (*Response, error) {
	return c.httpClient.GET(facilitiesPath + url.PathEscape(roomID))
}

func (c *FacilityClient) DeleteByRoomID(roomID int64) (*Response, error) {
	return c.httpClient.DELETE(facilitiesPath + strconv.FormatInt(roomID, 10))
}
