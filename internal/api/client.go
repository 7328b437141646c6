package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bdvail/internal/domain"
	"bdvail/internal/domain/models"
)

// Paths are relative to the site root; they must match the WordPress plugin
// routes.
const (
	apiPrefix    = "wp-json/bdvail/v1/"
	pathRoutes   = "app/routes"
	pathBooking  = "app/booking"
	pathBookings = "app/bookings"
	pathSupport  = "app/support"

	maxBodyBytes = 4 << 20
)

// Transport is the set of remote operations the app consumes.
type Transport interface {
	ListRoutes(ctx context.Context) ([]models.Route, error)
	CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingResponse, error)
	ListBookings(ctx context.Context, phone string) ([]models.Booking, error)
	SendSupport(ctx context.Context, req models.SupportRequest) (models.ApiResponse, error)
}

// Client talks to the BDVail REST API over HTTP+JSON.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Request logging is
// still added on top of its transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient builds a client for baseURL (site root, e.g.
// "https://www.bdvail.com/"). timeout bounds each call end to end.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	next := c.http.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	wrapped := *c.http
	wrapped.Transport = &loggingTransport{next: next}
	c.http = &wrapped

	return c, nil
}

// BaseURL returns the site root the client is bound to.
func (c *Client) BaseURL() string { return c.baseURL.String() }

func (c *Client) ListRoutes(ctx context.Context) ([]models.Route, error) {
	var out []models.Route
	if err := c.do(ctx, "list routes", http.MethodGet, pathRoutes, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingResponse, error) {
	var out models.BookingResponse
	if err := c.do(ctx, "create booking", http.MethodPost, pathBooking, nil, req, &out); err != nil {
		return models.BookingResponse{}, err
	}
	return out, nil
}

func (c *Client) ListBookings(ctx context.Context, phone string) ([]models.Booking, error) {
	q := url.Values{}
	q.Set("phone", phone)

	var out []models.Booking
	if err := c.do(ctx, "list bookings", http.MethodGet, pathBookings, q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SendSupport(ctx context.Context, req models.SupportRequest) (models.ApiResponse, error) {
	if strings.TrimSpace(req.Subject) == "" {
		req.Subject = models.DefaultSupportSubject
	}
	var out models.ApiResponse
	if err := c.do(ctx, "send support", http.MethodPost, pathSupport, nil, req, &out); err != nil {
		return models.ApiResponse{}, err
	}
	return out, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL.ResolveReference(&url.URL{Path: apiPrefix + path})
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return domain.InternalError{Msg: "failed to encode " + op + " request", Err: err}
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), rdr)
	if err != nil {
		return domain.InternalError{Msg: "failed to build " + op + " request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.TransportError{Op: op, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Msg:        serverMessage(raw, resp.StatusCode),
		}
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return domain.TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Msg:        "malformed response from server",
			Err:        err,
		}
	}
	return nil
}

// serverMessage pulls "message" out of a WordPress REST error body, falling
// back to the status text.
func serverMessage(raw []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if msg := strings.TrimSpace(payload.Message); msg != "" {
			return msg
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected server response"
}
