package models

import "time"

// UserProfile holds the per-user credentials the worker consumes: the
// calendar refresh token and the push device token. Either may be empty
// until the user completes the corresponding registration flow.
type UserProfile struct {
	ID                 string
	GoogleRefreshToken string
	ExpoPushToken      string
	CreatedAt          time.Time
}
