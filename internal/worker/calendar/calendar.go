// Package calendar defines the calendar-provider collaborator: an explicit
// payload type, a per-event client interface, and a factory that builds a
// client from a user's refresh token.
package calendar

import (
	"context"
	"time"
)

// EntryPayload is the provider-independent shape of a calendar entry.
type EntryPayload struct {
	Title       string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
}

// AlertOffsetsMinutes are the calendar-native popup alerts embedded in every
// synced entry: 24 hours, 3 hours, and 30 minutes before start. These exist
// alongside the worker's own reminders so the calendar app and the push
// channel each alert the user.
var AlertOffsetsMinutes = []int64{24 * 60, 3 * 60, 30}

// Client creates or updates entries in one user's calendar.
type Client interface {
	// Create inserts a new entry and returns its external id.
	Create(ctx context.Context, calendarID string, payload EntryPayload) (string, error)

	// Update rewrites the entry with the given external id and returns
	// the (possibly unchanged) external id.
	Update(ctx context.Context, calendarID string, externalID string, payload EntryPayload) (string, error)
}

// ClientFactory builds a Client authenticated as a specific user.
type ClientFactory interface {
	ForUser(ctx context.Context, refreshToken string) (Client, error)
}
