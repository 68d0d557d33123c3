package reminders

import (
	"context"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/worker/models"
)

type Repository interface {
	// Upsert inserts a reminder keyed by (event_id, reminder_type). An
	// existing row for the key is left untouched, so re-scheduling never
	// resets an in-flight reminder's retry state.
	Upsert(ctx context.Context, reminder *models.Reminder) error

	// SelectDue returns reminders eligible for delivery at the given
	// instant, joined with the parent event.
	SelectDue(ctx context.Context, now time.Time, retryCap int) ([]*models.DueReminder, error)

	// Claim moves a reminder from pending to delivering, guarded by the
	// retry count observed at selection time. Returns
	// common.ErrReminderClaimed when another pass owns the row.
	Claim(ctx context.Context, id string, retryCount int) error

	// MarkSent terminally marks a reminder delivered.
	MarkSent(ctx context.Context, id string, sentAt time.Time) error

	// MarkFailed terminally fails a reminder with an explanatory message,
	// leaving the retry count as is.
	MarkFailed(ctx context.Context, id string, errorMessage string) error

	// RecordAttempt stores the outcome of a failed delivery attempt: the
	// new retry count, the resulting status, and the error message (empty
	// clears any previous message).
	RecordAttempt(ctx context.Context, id string, retryCount int, status string, errorMessage string) error
}
