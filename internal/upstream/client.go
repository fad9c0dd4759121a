// Package upstream is the typed client for the remote booking API, which
// owns every persistence endpoint this application consumes.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cruisebooking/internal/domain"
	"cruisebooking/internal/domain/models"
	"cruisebooking/internal/monitoring"
)

const (
	endpointItineraries  = "get_itineraries.php"
	endpointCabinPricing = "get_cabin_pricing.php"
	endpointAvailability = "get_cabin_availability.php"
	endpointBooking      = "create_booking.php"
	endpointPassengers   = "save_passengers.php"
	endpointEmail        = "send_confirmation_email.php"
	endpointLogin        = "login.php"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Itineraries(ctx context.Context) ([]models.Itinerary, error) {
	var out []models.Itinerary
	if err := c.getJSON(ctx, endpointItineraries, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CabinPricing(ctx context.Context) ([]models.CabinPricing, error) {
	var out []models.CabinPricing
	if err := c.getJSON(ctx, endpointCabinPricing, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CabinAvailability(ctx context.Context, shipName, route string) ([]models.CabinAvailability, error) {
	q := url.Values{}
	q.Set("ship_name", shipName)
	q.Set("route", route)
	var out []models.CabinAvailability
	if err := c.getJSON(ctx, endpointAvailability, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBooking(ctx context.Context, req BookingRequest) (BookingResponse, error) {
	var out BookingResponse
	if err := c.postJSON(ctx, endpointBooking, req, &out); err != nil {
		return BookingResponse{}, err
	}
	return out, nil
}

func (c *Client) SavePassengers(ctx context.Context, req PassengerSaveRequest) (BasicResponse, error) {
	var out BasicResponse
	if err := c.postJSON(ctx, endpointPassengers, req, &out); err != nil {
		return BasicResponse{}, err
	}
	return out, nil
}

func (c *Client) SendConfirmationEmail(ctx context.Context, req ConfirmationEmailRequest) (BasicResponse, error) {
	var out BasicResponse
	if err := c.postJSON(ctx, endpointEmail, req, &out); err != nil {
		return BasicResponse{}, err
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	if err := c.postJSON(ctx, endpointLogin, req, &out); err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// Health probes the itinerary endpoint, which every screen depends on.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.Itineraries(ctx)
	return err
}

// Forward relays an admin screen request as-is and returns the raw status
// and body. The admin dashboards are plain fetch-render-mutate forms over
// the remote CRUD endpoints, so no per-resource typing is needed here.
func (c *Client) Forward(ctx context.Context, method, endpoint string, query url.Values, body []byte) (int, []byte, error) {
	u := c.BaseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, domain.InternalError{Msg: "failed to build upstream request", Err: err}
	}
	if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		monitoring.UpstreamRequest(endpoint, "error", time.Since(start))
		return 0, nil, domain.UnavailableError{Service: "booking service", Err: err}
	}
	defer resp.Body.Close()
	monitoring.UpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, domain.UnavailableError{Service: "booking service", Err: err}
	}
	return resp.StatusCode, data, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	u := c.BaseURL + "/" + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.InternalError{Msg: "failed to build upstream request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	return c.do(req, endpoint, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return domain.InternalError{Msg: "failed to encode upstream payload", Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/"+endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.InternalError{Msg: "failed to build upstream request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(req, endpoint, out)
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		monitoring.UpstreamRequest(endpoint, "error", time.Since(start))
		return domain.UnavailableError{Service: "booking service", Err: err}
	}
	defer resp.Body.Close()
	monitoring.UpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.UnavailableError{Service: "booking service", Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return domain.NotFoundError{Resource: endpoint}
	case resp.StatusCode >= 400:
		return domain.UnavailableError{
			Service: "booking service",
			Err:     fmt.Errorf("%s returned status %d: %s", endpoint, resp.StatusCode, summarize(body)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.InternalError{Msg: "unexpected response from booking service", Err: err}
	}
	return nil
}

func summarize(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
