package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "bdvail/internal/config"
	intdb "bdvail/internal/db"
	"bdvail/internal/domain/models"
)

type SupportStore struct {
	DB *sql.DB
}

func (s SupportStore) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Insert stores a support ticket and returns its id.
func (s SupportStore) Insert(ctx context.Context, req models.SupportRequest) (int64, error) {
	res, err := s.db().ExecContext(ctx, `
		INSERT INTO app_support_tickets (name, phone, email, subject, message, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())
	`,
		strings.TrimSpace(req.Name),
		intdb.NullIfEmpty(strings.TrimSpace(req.Phone)),
		intdb.NullIfEmpty(strings.TrimSpace(req.Email)),
		strings.TrimSpace(req.Subject),
		strings.TrimSpace(req.Message),
	)
	if err != nil {
		return 0, fmt.Errorf("insert support ticket: %w", err)
	}
	return res.LastInsertId()
}
