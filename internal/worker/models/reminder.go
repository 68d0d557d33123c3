package models

import "time"

// ReminderType identifies one of the fixed reminder lead times.
type ReminderType string

const (
	Reminder24Hours   ReminderType = "24_hours"
	Reminder3Hours    ReminderType = "3_hours"
	Reminder30Minutes ReminderType = "30_minutes"
)

// Reminder delivery statuses. Delivering is a short-lived claim marker held
// while a pass is publishing the notification; sent and failed are terminal.
const (
	ReminderStatusPending    = "pending"
	ReminderStatusDelivering = "delivering"
	ReminderStatusSent       = "sent"
	ReminderStatusFailed     = "failed"
)

// ReminderTypes returns the fixed set of reminder types, longest lead first.
func ReminderTypes() []ReminderType {
	return []ReminderType{Reminder24Hours, Reminder3Hours, Reminder30Minutes}
}

// Lead returns how long before the event start a reminder of this type fires.
func (t ReminderType) Lead() time.Duration {
	switch t {
	case Reminder24Hours:
		return 24 * time.Hour
	case Reminder3Hours:
		return 3 * time.Hour
	case Reminder30Minutes:
		return 30 * time.Minute
	default:
		return 0
	}
}

// Reminder is a single scheduled notification for an event. The pair
// (EventID, Type) is the dedup key; a zero SentAt means not sent yet.
type Reminder struct {
	ID           string
	EventID      string
	Type         ReminderType
	NotifyAt     time.Time
	Status       string
	RetryCount   int
	ErrorMessage string
	SentAt       time.Time
	CreatedAt    time.Time
}

// DueReminder is a reminder joined with the parent event fields needed to
// render and route the notification.
type DueReminder struct {
	Reminder
	EventTitle string
	EventStart time.Time
	UserID     string
}
