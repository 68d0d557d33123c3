// Package push defines the push-gateway collaborator: an explicit message
// type and a gateway interface whose errors carry a failure classification.
package push

import "context"

// Message is the provider-independent shape of one notification.
type Message struct {
	To    string
	Title string
	Body  string
	Data  map[string]string
}

// Gateway publishes a notification to a single device.
//
// A nil return means the gateway accepted the message. Errors are classified
// with common.FailureKind: transport and server errors are retryable, while
// conditions no retry can resolve (malformed token, unregistered device) are
// terminal.
type Gateway interface {
	Publish(ctx context.Context, msg Message) error
}
