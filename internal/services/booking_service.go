package services

import (
	"context"
	"fmt"
	"strings"

	"bdvail/internal/domain"
	"bdvail/internal/domain/models"
	"bdvail/internal/projectors"
	"bdvail/internal/storage"
	"bdvail/internal/utils"
)

const (
	msgRouteNotFound = "Route not found."
	msgBadDate       = "Date must be in YYYY-MM-DD format."
	msgBadTime       = "Time must be in HH:MM format."
)

// BookingService is the sandbox side of booking creation and lookup.
type BookingService struct {
	Routes    storage.RouteStore
	Bookings  storage.BookingStore
	Policy    projectors.BookingPolicy
	RequestID string
}

// Create re-validates req and stores it as a pending booking. Business
// rejections come back as an unsuccessful response, not as an error; the
// error is reserved for storage failures.
func (s BookingService) Create(ctx context.Context, req models.BookingRequest) (models.BookingResponse, error) {
	if err := projectors.ValidateBooking(req, s.Policy); err != nil {
		return models.BookingResponse{Success: false, Message: err.Error()}, nil
	}
	if _, err := utils.ParseDate(req.Date); err != nil {
		return models.BookingResponse{Success: false, Message: msgBadDate}, nil
	}
	if !utils.IsBlank(req.Time) {
		if _, err := utils.ParseClock(req.Time); err != nil {
			return models.BookingResponse{Success: false, Message: msgBadTime}, nil
		}
	}

	if req.RouteID != nil {
		route, err := s.Routes.Get(ctx, *req.RouteID)
		if domain.IsNotFound(err) {
			return models.BookingResponse{Success: false, Message: msgRouteNotFound}, nil
		}
		if err != nil {
			return models.BookingResponse{}, domain.InternalError{Msg: "load route", Err: err}
		}
		if strings.TrimSpace(req.RouteName) == "" {
			req.RouteName = route.Name
		}
	}

	id, err := s.Bookings.Insert(ctx, req, domain.StatusPending)
	if err != nil {
		return models.BookingResponse{}, domain.InternalError{Msg: "store booking", Err: err}
	}
	utils.LogEvent(s.RequestID, "booking", "create", fmt.Sprintf("booking_id=%d passengers=%d", id, req.Passengers))
	return models.BookingResponse{Success: true, BookingID: &id}, nil
}

// ListByPhone returns the bookings made with phone, newest first.
func (s BookingService) ListByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	if err := projectors.ValidateTripPhone(phone); err != nil {
		return nil, err
	}
	out, err := s.Bookings.ListByPhone(ctx, phone)
	if err != nil {
		return nil, domain.InternalError{Msg: "list bookings", Err: err}
	}
	return out, nil
}
