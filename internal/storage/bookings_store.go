package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "bdvail/internal/config"
	intdb "bdvail/internal/db"
	"bdvail/internal/domain"
	"bdvail/internal/domain/models"
	"bdvail/internal/utils"
)

type BookingStore struct {
	DB *sql.DB
}

func (s BookingStore) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// PhoneKey is the form phones are matched on: whitespace removed.
func PhoneKey(phone string) string {
	return utils.NormalizePhone(phone)
}

// Insert stores a booking with the given status and returns its id.
func (s BookingStore) Insert(ctx context.Context, req models.BookingRequest, status domain.Status) (int64, error) {
	res, err := s.db().ExecContext(ctx, `
		INSERT INTO app_bookings (
			route_id, route_name, pickup_location, dropoff_location,
			trip_date, trip_time, passengers, child_seats, luggage,
			flight_number, name, phone, phone_key, email, comment,
			status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`,
		intdb.NullInt64(req.RouteID),
		intdb.NullIfEmpty(strings.TrimSpace(req.RouteName)),
		strings.TrimSpace(req.PickupLocation),
		strings.TrimSpace(req.DropoffLocation),
		strings.TrimSpace(req.Date),
		strings.TrimSpace(req.Time),
		req.Passengers,
		req.ChildSeats,
		req.Luggage,
		intdb.NullIfEmpty(strings.TrimSpace(req.FlightNumber)),
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.Phone),
		PhoneKey(req.Phone),
		intdb.NullIfEmpty(strings.TrimSpace(req.Email)),
		intdb.NullIfEmpty(strings.TrimSpace(req.Comment)),
		string(status),
	)
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert booking: %w", err)
	}
	return id, nil
}

// ListByPhone returns the bookings made with phone, newest first.
func (s BookingStore) ListByPhone(ctx context.Context, phone string) ([]models.Booking, error) {
	rows, err := s.db().QueryContext(ctx, `
		SELECT id, COALESCE(route_name, ''), pickup_location, dropoff_location,
		       trip_date, trip_time, passengers, status
		FROM app_bookings
		WHERE phone_key = ?
		ORDER BY created_at DESC, id DESC
	`, PhoneKey(phone))
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		var status string
		if err := rows.Scan(&b.ID, &b.RouteName, &b.PickupLocation, &b.DropoffLocation, &b.Date, &b.Time, &b.Passengers, &status); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.Status = domain.Status(status)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookings: %w", err)
	}
	return out, nil
}

// CompletePast marks confirmed bookings dated before today as completed and
// returns how many rows changed. today is "2006-01-02".
func (s BookingStore) CompletePast(ctx context.Context, today string) (int64, error) {
	res, err := s.db().ExecContext(ctx, `
		UPDATE app_bookings SET status = ?
		WHERE status = ? AND trip_date < ?
	`, string(domain.StatusCompleted), string(domain.StatusConfirmed), today)
	if err != nil {
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("complete past bookings: %w", err)
	}
	return n, nil
}
