package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventkeeper/internal/common"
	"github.com/dmitrijs2005/eventkeeper/internal/logging"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/calendar"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/models"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/events"
	"github.com/dmitrijs2005/eventkeeper/internal/worker/repositories/users"
)

// SyncService pushes pending events to the external calendar and hands each
// successfully synced event to the scheduler.
type SyncService struct {
	events     events.Repository
	users      users.Repository
	calendars  calendar.ClientFactory
	scheduler  *ScheduleService
	calendarID string
	logger     logging.Logger

	now func() time.Time
}

func NewSyncService(
	events events.Repository,
	users users.Repository,
	calendars calendar.ClientFactory,
	scheduler *ScheduleService,
	calendarID string,
	logger logging.Logger,
) *SyncService {
	return &SyncService{
		events:     events,
		users:      users,
		calendars:  calendars,
		scheduler:  scheduler,
		calendarID: calendarID,
		logger:     logger,
		now:        time.Now,
	}
}

// SyncPendingEvents processes every pending event once. Failures are
// isolated per event: a collaborator error leaves that event pending for the
// next pass and processing continues with its siblings. The returned error
// reports only a failure to read the batch itself.
func (s *SyncService) SyncPendingEvents(ctx context.Context) error {
	pending, err := s.events.SelectPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending events: %w", err)
	}

	s.logger.Info(ctx, "processing pending events", "count", len(pending))

	var synced, deferred, failed int
	for _, event := range pending {
		switch err := s.syncOne(ctx, event); {
		case err == nil:
			synced++
		case common.KindOf(err) == common.FailureDeferred:
			deferred++
			s.logger.Warn(ctx, "deferring event sync", "event_id", event.ID, "reason", err.Error())
		default:
			failed++
			s.logger.Error(ctx, "event sync failed", "event_id", event.ID, "error", err.Error())
		}
	}

	s.logger.Info(ctx, "event sync pass finished", "synced", synced, "deferred", deferred, "failed", failed)
	return nil
}

// syncOne performs the full lifecycle for a single event: credential lookup,
// calendar create/update, status transition, reminder scheduling.
func (s *SyncService) syncOne(ctx context.Context, event *models.Event) error {
	token, err := s.users.CalendarRefreshToken(ctx, event.UserID)
	if err != nil {
		// A missing credential self-resolves once the user connects
		// their calendar; skip without touching the event.
		if errors.Is(err, common.ErrNoCalendarToken) {
			return common.Classified(common.FailureDeferred, err)
		}
		return fmt.Errorf("credential lookup failed: %w", err)
	}

	client, err := s.calendars.ForUser(ctx, token)
	if err != nil {
		return fmt.Errorf("calendar client init failed: %w", err)
	}

	payload := calendar.EntryPayload{
		Title:       event.Title,
		Description: event.Description,
		Location:    event.Location,
		Start:       event.StartTime,
		End:         event.EndTime,
	}

	// An event that already carries an external id is updated in place.
	// This branch is the sole guard against duplicate calendar entries
	// when a previous pass synced the calendar but failed afterwards.
	var externalID string
	if event.GoogleCalendarID != "" {
		externalID, err = client.Update(ctx, s.calendarID, event.GoogleCalendarID, payload)
	} else {
		externalID, err = client.Create(ctx, s.calendarID, payload)
	}
	if err != nil {
		return fmt.Errorf("calendar call failed: %w", err)
	}

	if err := s.events.MarkSynced(ctx, event.ID, externalID, s.now()); err != nil {
		return fmt.Errorf("failed to mark event synced: %w", err)
	}

	s.logger.Info(ctx, "event synced", "event_id", event.ID, "google_calendar_id", externalID)

	// A scheduling failure after a successful sync leaves the event
	// synced with no reminders. The gap is logged, not rolled back.
	if err := s.scheduler.ScheduleReminders(ctx, event.ID, event.StartTime); err != nil {
		s.logger.Error(ctx, "reminder scheduling failed after sync", "event_id", event.ID, "error", err.Error())
	}

	return nil
}
