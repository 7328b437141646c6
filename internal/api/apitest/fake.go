// Package apitest provides an in-memory api.Transport for tests.
package apitest

import (
	"context"
	"sync"

	"bdvail/internal/domain/models"
)

// Fake is a scriptable api.Transport that counts invocations. Zero value
// answers every call with empty results.
type Fake struct {
	mu sync.Mutex

	Routes    []models.Route
	RoutesErr error

	BookingResp models.BookingResponse
	BookingErr  error

	Bookings    []models.Booking
	BookingsErr error

	SupportResp models.ApiResponse
	SupportErr  error

	// Gates are consumed one per call, in call order. A call that takes a
	// gate blocks until it is closed or ctx is done. Calls beyond the list do
	// not block.
	Gates []chan struct{}

	RoutesCalls   int
	BookingCalls  int
	BookingsCalls int
	SupportCalls  int

	LastBooking models.BookingRequest
	LastPhone   string
	LastSupport models.SupportRequest
}

func (f *Fake) wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Fake) ListRoutes(ctx context.Context) ([]models.Route, error) {
	f.mu.Lock()
	f.RoutesCalls++
	gate := f.takeGate()
	f.mu.Unlock()
	if err := f.wait(ctx, gate); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.RoutesErr != nil {
		return nil, f.RoutesErr
	}
	return append([]models.Route(nil), f.Routes...), nil
}

func (f *Fake) CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingResponse, error) {
	f.mu.Lock()
	f.BookingCalls++
	gate := f.takeGate()
	f.LastBooking = req
	f.mu.Unlock()
	if err := f.wait(ctx, gate); err != nil {
		return models.BookingResponse{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BookingErr != nil {
		return models.BookingResponse{}, f.BookingErr
	}
	return f.BookingResp, nil
}

func (f *Fake) ListBookings(ctx context.Context, phone string) ([]models.Booking, error) {
	f.mu.Lock()
	f.BookingsCalls++
	gate := f.takeGate()
	f.LastPhone = phone
	f.mu.Unlock()
	if err := f.wait(ctx, gate); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BookingsErr != nil {
		return nil, f.BookingsErr
	}
	return append([]models.Booking(nil), f.Bookings...), nil
}

func (f *Fake) SendSupport(ctx context.Context, req models.SupportRequest) (models.ApiResponse, error) {
	f.mu.Lock()
	f.SupportCalls++
	gate := f.takeGate()
	f.LastSupport = req
	f.mu.Unlock()
	if err := f.wait(ctx, gate); err != nil {
		return models.ApiResponse{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SupportErr != nil {
		return models.ApiResponse{}, f.SupportErr
	}
	return f.SupportResp, nil
}

func (f *Fake) takeGate() chan struct{} {
	if len(f.Gates) == 0 {
		return nil
	}
	g := f.Gates[0]
	f.Gates = f.Gates[1:]
	return g
}

// Calls returns the invocation counters under lock.
func (f *Fake) Calls() (routes, booking, bookings, support int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.RoutesCalls, f.BookingCalls, f.BookingsCalls, f.SupportCalls
}

// Set mutates the fake under its lock, for tests that reconfigure it
// between calls.
func (f *Fake) Set(fn func(f *Fake)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// ID returns a pointer to v, for BookingResponse.BookingID.
func ID(v int64) *int64 { return &v }
