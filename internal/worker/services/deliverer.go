package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/models"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/push"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/reminders"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/users"
)

// leadText maps a reminder type to its human-readable lead time.
var leadText = map[models.ReminderType]string{
	models.Reminder24Hours:   "24 hours",
	models.Reminder3Hours:    "3 hours",
	models.Reminder30Minutes: "30 minutes",
}

// DeliveryService drives due reminders through the delivery state machine.
type DeliveryService struct {
	reminders reminders.Repository
	users     users.Repository
	gateway   push.Gateway
	retryCap  int
	logger    logging.Logger

	now func() time.Time
}

func NewDeliveryService(
	reminders reminders.Repository,
	users users.Repository,
	gateway push.Gateway,
	retryCap int,
	logger logging.Logger,
) *DeliveryService {
	return &DeliveryService{
		reminders: reminders,
		users:     users,
		gateway:   gateway,
		retryCap:  retryCap,
		logger:    logger,
		now:       time.Now,
	}
}

// DeliverDueReminders processes every reminder whose fire instant has passed
// and that still has retry budget. Failures are isolated per reminder. The
// returned error reports only a failure to read the batch itself.
func (s *DeliveryService) DeliverDueReminders(ctx context.Context) error {
	due, err := s.reminders.SelectDue(ctx, s.now(), s.retryCap)
	if err != nil {
		return fmt.Errorf("failed to load due reminders: %w", err)
	}

	s.logger.Info(ctx, "processing due reminders", "count", len(due))

	var sent, skipped, failed int
	for _, reminder := range due {
		switch err := s.deliverOne(ctx, reminder); {
		case err == nil:
			sent++
		case errors.Is(err, common.ErrReminderClaimed):
			skipped++
			s.logger.Debug(ctx, "reminder claimed elsewhere", "reminder_id", reminder.ID)
		default:
			failed++
			s.logger.Warn(ctx, "reminder delivery failed", "reminder_id", reminder.ID,
				"kind", common.KindOf(err).String(), "error", err.Error())
		}
	}

	s.logger.Info(ctx, "delivery pass finished", "sent", sent, "skipped", skipped, "failed", failed)
	return nil
}

// deliverOne claims a reminder, resolves the device token, publishes the
// notification, and records the resulting state transition.
func (s *DeliveryService) deliverOne(ctx context.Context, reminder *models.DueReminder) error {
	// The claim is a conditional single-row update keyed on the retry
	// count observed at selection time. If it misses, a concurrent pass
	// already owns this attempt.
	if err := s.reminders.Claim(ctx, reminder.ID, reminder.RetryCount); err != nil {
		return err
	}

	token, err := s.users.PushToken(ctx, reminder.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNoPushToken) {
			// No backoff will produce a token; fail terminally.
			return s.failTerminally(ctx, reminder, common.Classified(common.FailureTerminal, err))
		}
		return s.recordFailure(ctx, reminder, fmt.Errorf("push token lookup failed: %w", err))
	}

	msg := renderNotification(reminder, token)

	if err := s.gateway.Publish(ctx, msg); err != nil {
		if common.KindOf(err) == common.FailureTerminal {
			return s.failTerminally(ctx, reminder, err)
		}
		return s.recordFailure(ctx, reminder, err)
	}

	if err := s.reminders.MarkSent(ctx, reminder.ID, s.now()); err != nil {
		return fmt.Errorf("failed to mark reminder sent: %w", err)
	}

	s.logger.Info(ctx, "reminder sent", "reminder_id", reminder.ID, "event_id", reminder.EventID,
		"reminder_type", string(reminder.Type))
	return nil
}

// failTerminally moves a reminder straight to failed with an explanatory
// message, bypassing the retry counter.
func (s *DeliveryService) failTerminally(ctx context.Context, reminder *models.DueReminder, cause error) error {
	if err := s.reminders.MarkFailed(ctx, reminder.ID, cause.Error()); err != nil {
		return fmt.Errorf("failed to record terminal failure: %w", err)
	}
	return cause
}

// recordFailure advances the retry counter. Reaching the cap is terminal and
// keeps the error message; below the cap the reminder returns to pending
// with the message cleared so the next pass retries cleanly.
func (s *DeliveryService) recordFailure(ctx context.Context, reminder *models.DueReminder, cause error) error {
	retryCount := reminder.RetryCount + 1

	status := models.ReminderStatusPending
	message := ""
	if retryCount >= s.retryCap {
		status = models.ReminderStatusFailed
		message = cause.Error()
	}

	if err := s.reminders.RecordAttempt(ctx, reminder.ID, retryCount, status, message); err != nil {
		return fmt.Errorf("failed to record delivery attempt: %w", err)
	}
	return cause
}

// renderNotification builds the push message for a reminder. An unknown
// reminder type falls back to its raw name in the body.
func renderNotification(reminder *models.DueReminder, token string) push.Message {
	text, ok := leadText[reminder.Type]
	if !ok {
		text = string(reminder.Type)
	}

	return push.Message{
		To:    token,
		Title: fmt.Sprintf("Upcoming Event: %s", reminder.EventTitle),
		Body:  fmt.Sprintf("Your event starts in %s", text),
		Data: map[string]string{
			"event_id":      reminder.EventID,
			"reminder_type": string(reminder.Type),
		},
	}
}
