package models

import "time"

// Event sync statuses.
const (
	EventStatusPending = "pending"
	EventStatusSynced  = "synced"
)

// Event is a user-created event awaiting (or finished with) calendar sync.
// Events are created by the owning application; the worker only transitions
// Status from pending to synced and attaches the external calendar id.
type Event struct {
	ID               string
	UserID           string
	Title            string
	Description      string
	StartTime        time.Time
	EndTime          time.Time
	Location         string
	Status           string
	GoogleCalendarID string
	SyncedAt         time.Time
	CreatedAt        time.Time
}
