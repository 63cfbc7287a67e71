package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// ErrTokenRequired is returned when the notification has no device token.
var ErrTokenRequired = errors.New("push: device token is required")

// FCMConfig configures the FCM HTTP sender.
type FCMConfig struct {
	// Endpoint is the FCM send URL, including the project path.
	Endpoint string
	// ServerKey authorizes requests; empty means the provider is not configured.
	ServerKey string
	// Timeout bounds each HTTP attempt.
	Timeout time.Duration
	// MaxRetries bounds retry attempts for transient failures.
	MaxRetries uint64
}

// FCM is a Push implementation backed by the FCM HTTP v1 API.
type FCM struct {
	cfg    FCMConfig
	client *http.Client
}

// NewFCM constructs an FCM push sender.
func NewFCM(cfg FCMConfig) *FCM {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &FCM{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Send delivers a notification, retrying transient HTTP failures with
// exponential backoff.
func (f *FCM) Send(ctx context.Context, n Notification) error {
	if f.cfg.ServerKey == "" || f.cfg.Endpoint == "" {
		return ErrNotConfigured
	}
	if n.Token == "" {
		return ErrTokenRequired
	}

	payload, err := json.Marshal(map[string]any{
		"message": map[string]any{
			"token": n.Token,
			"notification": map[string]string{
				"title": n.Title,
				"body":  n.Body,
			},
			"data": n.Data,
		},
	})
	if err != nil {
		return err
	}

	backoff := retry.WithMaxRetries(f.cfg.MaxRetries, retry.NewExponential(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return f.sendOnce(ctx, payload)
	})
}

func (f *FCM) sendOnce(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.cfg.ServerKey)

	resp, err := f.client.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return retry.RetryableError(fmt.Errorf("push: fcm responded %d: %s", resp.StatusCode, body))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("push: fcm responded %d: %s", resp.StatusCode, body)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (f *FCM) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
