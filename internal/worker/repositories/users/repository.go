package users

import "context"

// Repository is the credential/device directory consulted per user.
type Repository interface {
	// CalendarRefreshToken returns the user's calendar refresh token, or
	// common.ErrNoCalendarToken when the user has none stored.
	CalendarRefreshToken(ctx context.Context, userID string) (string, error)

	// PushToken returns the user's push device token, or
	// common.ErrNoPushToken when the user has none stored.
	PushToken(ctx context.Context, userID string) (string, error)
}
