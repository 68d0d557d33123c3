// Package common defines shared constants and sentinel errors used across
// the worker's components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Directory lookups that legitimately come back empty. A missing
	// calendar credential defers the event to a later pass; a missing
	// push token permanently fails the reminder.
	ErrNoCalendarToken = errors.New("no calendar refresh token for user")
	ErrNoPushToken     = errors.New("no push token available")

	// ErrDeviceNotRegistered marks a push rejected because the target
	// device token is no longer valid on the gateway side.
	ErrDeviceNotRegistered = errors.New("device not registered")

	// ErrReminderClaimed means another pass holds the delivery claim
	// for the reminder, so this pass must leave it alone.
	ErrReminderClaimed = errors.New("reminder already claimed")
)
