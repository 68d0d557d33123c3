// Package users provides the PostgreSQL-backed credential/device directory.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/dbx"
)

// PostgresRepository implements the user directory over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CalendarRefreshToken looks up a user's stored calendar refresh token.
// A missing user row and a NULL/empty token are both reported as
// common.ErrNoCalendarToken: either way there is nothing to sync with.
func (r *PostgresRepository) CalendarRefreshToken(ctx context.Context, userID string) (string, error) {
	query := `SELECT google_refresh_token FROM users WHERE id = $1`

	var token sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNoCalendarToken
	}
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	if !token.Valid || token.String == "" {
		return "", common.ErrNoCalendarToken
	}
	return token.String, nil
}

// PushToken looks up a user's stored push device token. A missing user row
// and a NULL/empty token are both reported as common.ErrNoPushToken.
func (r *PostgresRepository) PushToken(ctx context.Context, userID string) (string, error) {
	query := `SELECT expo_push_token FROM users WHERE id = $1`

	var token sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", common.ErrNoPushToken
	}
	if err != nil {
		return "", fmt.Errorf("db error: %w", err)
	}
	if !token.Valid || token.String == "" {
		return "", common.ErrNoPushToken
	}
	return token.String, nil
}
