package repositories

import (
	"context"

	"bdvail/internal/api"
	"bdvail/internal/domain/models"
)

// BookingRepository covers bookings and support requests.
type BookingRepository struct {
	API api.Transport
}

func NewBookingRepository(t api.Transport) BookingRepository {
	return BookingRepository{API: t}
}

func (r BookingRepository) CreateBooking(ctx context.Context, req models.BookingRequest) (models.BookingResponse, error) {
	return r.API.CreateBooking(ctx, req)
}

// GetBookings lists the bookings made with phone.
func (r BookingRepository) GetBookings(ctx context.Context, phone string) ([]models.Booking, error) {
	return r.API.ListBookings(ctx, phone)
}

func (r BookingRepository) SendSupport(ctx context.Context, req models.SupportRequest) (models.ApiResponse, error) {
	return r.API.SendSupport(ctx, req)
}
