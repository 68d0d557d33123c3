package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/calendar"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/models"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/push"
)

// -------- test fakes --------

// nopLogger discards everything; tests assert on state, not log output.
type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...any) {}
func (l nopLogger) With(args ...any) logging.Logger                  { return l }

// fakeEventsRepo keeps events in memory and applies MarkSynced in place.
type fakeEventsRepo struct {
	events    []*models.Event
	selectErr error
	markErr   error
}

func (f *fakeEventsRepo) SelectPending(ctx context.Context) ([]*models.Event, error) {
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	var pending []*models.Event
	for _, e := range f.events {
		if e.Status == models.EventStatusPending {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

func (f *fakeEventsRepo) MarkSynced(ctx context.Context, id string, googleCalendarID string, syncedAt time.Time) error {
	if f.markErr != nil {
		return f.markErr
	}
	for _, e := range f.events {
		if e.ID == id {
			e.Status = models.EventStatusSynced
			e.GoogleCalendarID = googleCalendarID
			e.SyncedAt = syncedAt
			return nil
		}
	}
	return common.ErrorNotFound
}

// fakeReminderRepo emulates the (event_id, reminder_type) upsert semantics
// in memory, so idempotence tests exercise the real dedup behavior. The
// events map backs the join SelectDue performs against the parent event.
type fakeReminderRepo struct {
	rows   map[string]*models.Reminder
	events map[string]joinedEvent

	upsertErr  error
	claimErr   error
	sentErr    error
	failErr    error
	recordErr  error
	upsertable int // count of Upsert calls, including conflicts
}

type joinedEvent struct {
	title  string
	start  time.Time
	userID string
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{
		rows:   make(map[string]*models.Reminder),
		events: make(map[string]joinedEvent),
	}
}

func reminderKey(eventID string, rtype models.ReminderType) string {
	return fmt.Sprintf("%s/%s", eventID, rtype)
}

func (f *fakeReminderRepo) Upsert(ctx context.Context, reminder *models.Reminder) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upsertable++
	key := reminderKey(reminder.EventID, reminder.Type)
	if _, exists := f.rows[key]; exists {
		return nil // conflict: existing row untouched
	}
	clone := *reminder
	f.rows[key] = &clone
	return nil
}

func (f *fakeReminderRepo) SelectDue(ctx context.Context, now time.Time, retryCap int) ([]*models.DueReminder, error) {
	var due []*models.DueReminder
	for _, r := range f.rows {
		if !r.NotifyAt.After(now) && r.SentAt.IsZero() && r.RetryCount < retryCap {
			ev := f.events[r.EventID]
			due = append(due, &models.DueReminder{
				Reminder:   *r,
				EventTitle: ev.title,
				EventStart: ev.start,
				UserID:     ev.userID,
			})
		}
	}
	return due, nil
}

func (f *fakeReminderRepo) Claim(ctx context.Context, id string, retryCount int) error {
	if f.claimErr != nil {
		return f.claimErr
	}
	r := f.byID(id)
	if r == nil || r.Status != models.ReminderStatusPending || !r.SentAt.IsZero() || r.RetryCount != retryCount {
		return common.ErrReminderClaimed
	}
	r.Status = models.ReminderStatusDelivering
	return nil
}

func (f *fakeReminderRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	if f.sentErr != nil {
		return f.sentErr
	}
	r := f.byID(id)
	r.Status = models.ReminderStatusSent
	r.SentAt = sentAt
	return nil
}

func (f *fakeReminderRepo) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	if f.failErr != nil {
		return f.failErr
	}
	r := f.byID(id)
	r.Status = models.ReminderStatusFailed
	r.ErrorMessage = errorMessage
	return nil
}

func (f *fakeReminderRepo) RecordAttempt(ctx context.Context, id string, retryCount int, status string, errorMessage string) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	r := f.byID(id)
	r.RetryCount = retryCount
	r.Status = status
	r.ErrorMessage = errorMessage
	return nil
}

func (f *fakeReminderRepo) byID(id string) *models.Reminder {
	for _, r := range f.rows {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (f *fakeReminderRepo) get(eventID string, rtype models.ReminderType) *models.Reminder {
	return f.rows[reminderKey(eventID, rtype)]
}

// fakeUsersRepo is a static credential directory.
type fakeUsersRepo struct {
	calendarTokens map[string]string
	pushTokens     map[string]string
	err            error
}

func (f *fakeUsersRepo) CalendarRefreshToken(ctx context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	token, ok := f.calendarTokens[userID]
	if !ok || token == "" {
		return "", common.ErrNoCalendarToken
	}
	return token, nil
}

func (f *fakeUsersRepo) PushToken(ctx context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	token, ok := f.pushTokens[userID]
	if !ok || token == "" {
		return "", common.ErrNoPushToken
	}
	return token, nil
}

// fakeCalendarClient records create/update calls.
type fakeCalendarClient struct {
	createdPayloads []calendar.EntryPayload
	updatedIDs      []string
	externalID      string
	err             error
}

func (f *fakeCalendarClient) Create(ctx context.Context, calendarID string, payload calendar.EntryPayload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.createdPayloads = append(f.createdPayloads, payload)
	return f.externalID, nil
}

func (f *fakeCalendarClient) Update(ctx context.Context, calendarID string, externalID string, payload calendar.EntryPayload) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.updatedIDs = append(f.updatedIDs, externalID)
	return externalID, nil
}

type fakeCalendarFactory struct {
	client     *fakeCalendarClient
	forUserErr error
	tokensSeen []string
}

func (f *fakeCalendarFactory) ForUser(ctx context.Context, refreshToken string) (calendar.Client, error) {
	if f.forUserErr != nil {
		return nil, f.forUserErr
	}
	f.tokensSeen = append(f.tokensSeen, refreshToken)
	return f.client, nil
}

// fakeGateway records published messages and returns a configured error.
type fakeGateway struct {
	published []push.Message
	err       error
}

func (f *fakeGateway) Publish(ctx context.Context, msg push.Message) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}
