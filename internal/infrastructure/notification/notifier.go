package notification

import "context"

// Message is a single outbound notification
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers notifications to users and subscribers.
// Callers decide whether a delivery failure is fatal: sign-up treats it as
// a hard failure and compensates, post-publish fans out fire-and-forget.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
