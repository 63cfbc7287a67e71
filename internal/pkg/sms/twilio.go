package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

// ErrPhoneRequired is returned when the message has no destination number.
var ErrPhoneRequired = errors.New("sms: destination phone number is required")

// TwilioConfig configures the Twilio REST sender.
type TwilioConfig struct {
	// BaseURL is the API base, e.g. https://api.twilio.com.
	BaseURL string
	// AccountSID identifies the Twilio account.
	AccountSID string
	// AuthToken authorizes requests; empty means the provider is not configured.
	AuthToken string
	// From is the sending phone number.
	From string
	// Timeout bounds each HTTP attempt.
	Timeout time.Duration
	// MaxRetries bounds retry attempts for transient failures.
	MaxRetries uint64
}

// Twilio is an SMS implementation backed by the Twilio Messages API.
type Twilio struct {
	cfg    TwilioConfig
	client *http.Client
}

// NewTwilio constructs a Twilio SMS sender.
func NewTwilio(cfg TwilioConfig) *Twilio {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Twilio{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

// Send delivers a message, retrying transient HTTP failures with exponential
// backoff.
func (t *Twilio) Send(ctx context.Context, msg Message) error {
	if t.cfg.AccountSID == "" || t.cfg.AuthToken == "" || t.cfg.From == "" {
		return ErrNotConfigured
	}
	if msg.To == "" {
		return ErrPhoneRequired
	}

	form := url.Values{}
	form.Set("To", msg.To)
	form.Set("From", t.cfg.From)
	form.Set("Body", msg.Body)
	payload := form.Encode()

	backoff := retry.WithMaxRetries(t.cfg.MaxRetries, retry.NewExponential(500*time.Millisecond))

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		return t.sendOnce(ctx, payload)
	})
}

func (t *Twilio) sendOnce(ctx context.Context, payload string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(t.cfg.BaseURL, "/"), t.cfg.AccountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(t.cfg.AccountSID, t.cfg.AuthToken)

	resp, err := t.client.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return retry.RetryableError(fmt.Errorf("sms: twilio responded %d: %s", resp.StatusCode, body))
	}
	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("sms: twilio responded %d: %s", resp.StatusCode, body)
	}

	return nil
}

// Close implements io.Closer for interface compatibility.
func (t *Twilio) Close() error {
	t.client.CloseIdleConnections()
	return nil
}
