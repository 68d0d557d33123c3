package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/models"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/reminders"
	"github.com/google/uuid"
)

// ScheduleService materializes reminder rows for a synced event.
type ScheduleService struct {
	reminders reminders.Repository
	logger    logging.Logger

	// now is a seam for tests.
	now func() time.Time
}

func NewScheduleService(reminders reminders.Repository, logger logging.Logger) *ScheduleService {
	return &ScheduleService{
		reminders: reminders,
		logger:    logger,
		now:       time.Now,
	}
}

// ScheduleReminders upserts one reminder per fixed lead time whose fire
// instant is still in the future. The (event_id, reminder_type) key makes the
// operation idempotent: re-running it never duplicates a reminder and never
// resets an in-flight reminder's retry state.
func (s *ScheduleService) ScheduleReminders(ctx context.Context, eventID string, eventStart time.Time) error {
	now := s.now()

	for _, rtype := range models.ReminderTypes() {
		notifyAt := eventStart.Add(-rtype.Lead())

		// A reminder that would fire in the past is meaningless.
		if !notifyAt.After(now) {
			s.logger.Debug(ctx, "skipping past reminder", "event_id", eventID, "reminder_type", string(rtype))
			continue
		}

		reminder := &models.Reminder{
			ID:         uuid.NewString(),
			EventID:    eventID,
			Type:       rtype,
			NotifyAt:   notifyAt,
			Status:     models.ReminderStatusPending,
			RetryCount: 0,
		}

		if err := s.reminders.Upsert(ctx, reminder); err != nil {
			return fmt.Errorf("failed to schedule %s reminder for event %s: %w", rtype, eventID, err)
		}

		s.logger.Info(ctx, "scheduled reminder", "event_id", eventID, "reminder_type", string(rtype), "notify_at", notifyAt)
	}

	return nil
}
