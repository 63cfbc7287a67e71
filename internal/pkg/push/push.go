// Package push defines the contract for sending mobile push notifications.
//
// Like the mail package, it keeps the application independent from a specific
// push provider; the bundled implementation talks to an FCM-compatible HTTP
// endpoint.
package push

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned when the provider has no credentials. Callers
// treat this as a skip condition rather than a delivery failure.
var ErrNotConfigured = errors.New("push: provider is not configured")

// Notification represents a push payload for a single device.
type Notification struct {
	// Token is the device registration token.
	Token string
	// Title is the notification title.
	Title string
	// Body is the notification body text.
	Body string
	// Data carries optional key/value payload data.
	Data map[string]string
}

// Push abstracts a push notification provider.
type Push interface {
	io.Closer
	// Send dispatches the notification to the device identified by its token.
	Send(ctx context.Context, n Notification) error
}
