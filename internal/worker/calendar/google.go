package calendar

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleClientFactory builds Google Calendar clients from per-user refresh
// tokens. The OAuth client id/secret identify the application; token refresh
// happens lazily inside the oauth2 transport.
type GoogleClientFactory struct {
	clientID     string
	clientSecret string
}

func NewGoogleClientFactory(clientID, clientSecret string) *GoogleClientFactory {
	return &GoogleClientFactory{clientID: clientID, clientSecret: clientSecret}
}

// ForUser returns a Client authenticated with the given refresh token.
func (f *GoogleClientFactory) ForUser(ctx context.Context, refreshToken string) (Client, error) {
	conf := &oauth2.Config{
		ClientID:     f.clientID,
		ClientSecret: f.clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gcal.CalendarScope},
	}

	ts := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	service, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &googleClient{service: service}, nil
}

type googleClient struct {
	service *gcal.Service
}

func (c *googleClient) Create(ctx context.Context, calendarID string, payload EntryPayload) (string, error) {
	created, err := c.service.Events.Insert(calendarID, toGoogleEvent(payload)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to insert calendar event: %w", err)
	}
	return created.Id, nil
}

func (c *googleClient) Update(ctx context.Context, calendarID string, externalID string, payload EntryPayload) (string, error) {
	updated, err := c.service.Events.Update(calendarID, externalID, toGoogleEvent(payload)).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to update calendar event: %w", err)
	}
	return updated.Id, nil
}

// toGoogleEvent maps the payload to the Google Calendar event shape,
// disabling the user's default alerts in favor of the fixed popup overrides.
func toGoogleEvent(payload EntryPayload) *gcal.Event {
	overrides := make([]*gcal.EventReminder, 0, len(AlertOffsetsMinutes))
	for _, minutes := range AlertOffsetsMinutes {
		overrides = append(overrides, &gcal.EventReminder{Method: "popup", Minutes: minutes})
	}

	return &gcal.Event{
		Summary:     payload.Title,
		Description: payload.Description,
		Location:    payload.Location,
		Start: &gcal.EventDateTime{
			DateTime: payload.Start.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: payload.End.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Reminders: &gcal.EventReminders{
			UseDefault:      false,
			Overrides:       overrides,
			ForceSendFields: []string{"UseDefault"},
		},
	}
}
