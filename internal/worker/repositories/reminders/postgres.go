// Package reminders provides the PostgreSQL-backed repository for reminder
// rows and the due-reminder query used by the delivery worker.
package reminders

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/dbx"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/models"
)

// PostgresRepository implements reminder storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert inserts a reminder; ON CONFLICT on the (event_id, reminder_type)
// key turns the insert into a no-op. Zero rows affected therefore is not an
// error: it means the reminder already exists.
func (r *PostgresRepository) Upsert(ctx context.Context, reminder *models.Reminder) error {
	query := `
		INSERT INTO reminders (id, event_id, reminder_type, notify_at, status, retry_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id, reminder_type) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		reminder.ID, reminder.EventID, string(reminder.Type), reminder.NotifyAt,
		reminder.Status, reminder.RetryCount)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// SelectDue returns reminders whose fire instant has passed, that were never
// sent, and that still have retry budget, joined with the parent event.
func (r *PostgresRepository) SelectDue(ctx context.Context, now time.Time, retryCap int) ([]*models.DueReminder, error) {
	query := `
		SELECT r.id, r.event_id, r.reminder_type, r.notify_at, r.status, r.retry_count,
		       e.title, e.start_time, e.user_id
		FROM reminders r
		JOIN events e ON e.id = r.event_id
		WHERE r.notify_at <= $1 AND r.sent_at IS NULL AND r.retry_count < $2
		ORDER BY r.notify_at
	`
	rows, err := r.db.QueryContext(ctx, query, now, retryCap)
	if err != nil {
		return nil, fmt.Errorf("failed to select due reminders: %w", err)
	}
	defer rows.Close()

	var result []*models.DueReminder
	for rows.Next() {
		var item models.DueReminder
		var rtype string
		if err := rows.Scan(
			&item.ID, &item.EventID, &rtype, &item.NotifyAt, &item.Status, &item.RetryCount,
			&item.EventTitle, &item.EventStart, &item.UserID,
		); err != nil {
			return nil, err
		}
		item.Type = models.ReminderType(rtype)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Claim conditionally transitions a pending reminder to delivering. The
// retry-count guard makes the claim specific to the attempt this pass
// selected: a concurrent pass that already advanced the row leaves nothing
// for this one to claim.
func (r *PostgresRepository) Claim(ctx context.Context, id string, retryCount int) error {
	query := `
		UPDATE reminders
		SET status = 'delivering'
		WHERE id = $1 AND status = 'pending' AND sent_at IS NULL AND retry_count = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, retryCount)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrReminderClaimed
	}
	return nil
}

// MarkSent terminally marks a reminder delivered.
func (r *PostgresRepository) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	query := `
		UPDATE reminders
		SET status = 'sent', sent_at = $2
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, sentAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// MarkFailed terminally fails a reminder without touching the retry count.
// Used for conditions no retry can resolve, such as a missing device token.
func (r *PostgresRepository) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	query := `
		UPDATE reminders
		SET status = 'failed', error_message = $2
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, errorMessage); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// RecordAttempt stores the outcome of a failed attempt. An empty
// errorMessage is written as NULL so a still-retryable reminder carries no
// stale message into its next pass.
func (r *PostgresRepository) RecordAttempt(ctx context.Context, id string, retryCount int, status string, errorMessage string) error {
	var msg sql.NullString
	if errorMessage != "" {
		msg = sql.NullString{String: errorMessage, Valid: true}
	}
	query := `
		UPDATE reminders
		SET retry_count = $2, status = $3, error_message = $4
		WHERE id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, id, retryCount, status, msg); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
