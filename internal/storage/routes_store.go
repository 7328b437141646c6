package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "bdvail/internal/config"
	"bdvail/internal/domain"
	"bdvail/internal/domain/models"
)

type RouteStore struct {
	DB *sql.DB
}

func (s RouteStore) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

const routeColumns = `id, name, from_location, to_location, base_price, currency, duration_minutes`

// List returns active routes in id order.
func (s RouteStore) List(ctx context.Context) ([]models.Route, error) {
	rows, err := s.db().QueryContext(ctx, `SELECT `+routeColumns+` FROM app_routes WHERE active = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query routes: %w", err)
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate routes: %w", err)
	}
	return out, nil
}

// Get returns one active route or domain.NotFoundError.
func (s RouteStore) Get(ctx context.Context, id int64) (models.Route, error) {
	row := s.db().QueryRowContext(ctx, `SELECT `+routeColumns+` FROM app_routes WHERE id = ? AND active = 1 LIMIT 1`, id)
	r, err := scanRoute(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Route{}, domain.NotFoundError{Resource: "route", Err: err}
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRoute(sc scanner) (models.Route, error) {
	var r models.Route
	if err := sc.Scan(&r.ID, &r.Name, &r.From, &r.To, &r.BasePrice, &r.Currency, &r.DurationMinutes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("scan route: %w", err)
	}
	return r, nil
}
