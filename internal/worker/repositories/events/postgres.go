// Package events provides the PostgreSQL-backed repository for event rows
// awaiting calendar sync.
package events

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/dbx"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/models"
)

// PostgresRepository implements event storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// SelectPending returns all events whose status is still pending, oldest first.
func (r *PostgresRepository) SelectPending(ctx context.Context) ([]*models.Event, error) {
	query := `
		SELECT id, user_id, title, description, start_time, end_time, location, google_calendar_id
		FROM events
		WHERE status = 'pending'
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending events: %w", err)
	}
	defer rows.Close()

	var result []*models.Event
	for rows.Next() {
		var item models.Event
		var calendarID sql.NullString
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Description,
			&item.StartTime, &item.EndTime, &item.Location, &calendarID,
		); err != nil {
			return nil, err
		}
		item.Status = models.EventStatusPending
		item.GoogleCalendarID = calendarID.String
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkSynced transitions an event to synced, attaching the external calendar
// id and the sync timestamp in a single statement.
func (r *PostgresRepository) MarkSynced(ctx context.Context, id string, googleCalendarID string, syncedAt time.Time) error {
	query := `
		UPDATE events
		SET status = 'synced', google_calendar_id = $2, synced_at = $3
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id, googleCalendarID, syncedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
