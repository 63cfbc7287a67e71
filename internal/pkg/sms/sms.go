// Package sms defines the contract for sending SMS text messages.
//
// The bundled implementation talks to a Twilio-compatible REST endpoint; the
// rest of the application depends only on the SMS interface.
package sms

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned when the provider has no credentials. Callers
// treat this as a skip condition rather than a delivery failure.
var ErrNotConfigured = errors.New("sms: provider is not configured")

// Message represents an SMS payload.
type Message struct {
	// To is the destination phone number in E.164 format.
	To string
	// Body is the message text.
	Body string
}

// SMS abstracts an SMS provider.
type SMS interface {
	io.Closer
	// Send dispatches the message to the destination number.
	Send(ctx context.Context, msg Message) error
}
