// Package storage holds the sandbox backend's MySQL stores.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	intdb "bdvail/internal/db"
	"bdvail/internal/domain/models"
	"bdvail/internal/utils"

	"github.com/sirupsen/logrus"
)

const (
	tableRoutes   = "app_routes"
	tableBookings = "app_bookings"
	tableSupport  = "app_support_tickets"
)

var schema = []struct {
	table string
	ddl   string
}{
	{tableRoutes, `
		CREATE TABLE IF NOT EXISTS app_routes (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			from_location VARCHAR(160) NOT NULL DEFAULT '',
			to_location VARCHAR(160) NOT NULL DEFAULT '',
			base_price DECIMAL(10,2) NOT NULL DEFAULT 0,
			currency VARCHAR(8) NOT NULL DEFAULT 'USD',
			duration_minutes INT NOT NULL DEFAULT 0,
			active TINYINT(1) NOT NULL DEFAULT 1
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{tableBookings, `
		CREATE TABLE IF NOT EXISTS app_bookings (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			route_id BIGINT NULL,
			route_name VARCHAR(120) NULL,
			pickup_location VARCHAR(255) NOT NULL,
			dropoff_location VARCHAR(255) NOT NULL,
			trip_date VARCHAR(10) NOT NULL,
			trip_time VARCHAR(5) NOT NULL DEFAULT '',
			passengers INT NOT NULL,
			child_seats INT NOT NULL DEFAULT 0,
			luggage INT NOT NULL DEFAULT 0,
			flight_number VARCHAR(32) NULL,
			name VARCHAR(120) NOT NULL,
			phone VARCHAR(40) NOT NULL DEFAULT '',
			phone_key VARCHAR(40) NOT NULL DEFAULT '',
			email VARCHAR(160) NULL,
			comment TEXT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL,
			KEY idx_app_bookings_phone (phone_key),
			KEY idx_app_bookings_status_date (status, trip_date)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
	{tableSupport, `
		CREATE TABLE IF NOT EXISTS app_support_tickets (
			id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(120) NOT NULL,
			phone VARCHAR(40) NULL,
			email VARCHAR(160) NULL,
			subject VARCHAR(200) NOT NULL,
			message TEXT NOT NULL,
			created_at DATETIME NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`},
}

// EnsureSchema creates the sandbox tables that do not exist yet.
func EnsureSchema(ctx context.Context, conn *sql.DB) error {
	for _, t := range schema {
		if intdb.HasTable(ctx, conn, t.table) {
			continue
		}
		if _, err := conn.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create %s: %w", t.table, err)
		}
		utils.Log.WithFields(logrus.Fields{"module": "storage", "table": t.table}).Info("table created")
	}
	return nil
}

// DefaultRoutes seeds an empty sandbox.
var DefaultRoutes = []models.Route{
	{Name: "Denver Airport to Vail", From: "Denver International Airport", To: "Vail, CO", BasePrice: 189, Currency: "USD", DurationMinutes: 150},
	{Name: "Eagle Airport to Vail", From: "Eagle County Regional Airport", To: "Vail, CO", BasePrice: 95, Currency: "USD", DurationMinutes: 45},
	{Name: "Vail to Beaver Creek", From: "Vail Village", To: "Beaver Creek", BasePrice: 60, Currency: "USD", DurationMinutes: 25},
	{Name: "Custom transfer"},
}

// SeedRoutes inserts routes when the routes table is empty and reports how
// many rows it added.
func SeedRoutes(ctx context.Context, conn *sql.DB, routes []models.Route) (int, error) {
	var count int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM app_routes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count routes: %w", err)
	}
	if count > 0 {
		return 0, nil
	}
	for i, r := range routes {
		if _, err := conn.ExecContext(ctx, `
			INSERT INTO app_routes (name, from_location, to_location, base_price, currency, duration_minutes)
			VALUES (?, ?, ?, ?, ?, ?)
		`, r.Name, r.From, r.To, r.BasePrice, utils.Safe(r.Currency, "USD"), r.DurationMinutes); err != nil {
			return i, fmt.Errorf("seed route %q: %w", r.Name, err)
		}
	}
	return len(routes), nil
}
