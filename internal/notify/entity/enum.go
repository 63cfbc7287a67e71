package entity

import "strings"

// Channel is a delivery medium for a scheduled notification.
type Channel string

const (
	ChannelUnknown Channel = ""
	ChannelEmail   Channel = "email"
	ChannelPush    Channel = "push"
	ChannelSMS     Channel = "sms"
)

func ChannelFromString(raw string) Channel {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "email":
		return ChannelEmail
	case "push":
		return ChannelPush
	case "sms":
		return ChannelSMS
	default:
		return ChannelUnknown
	}
}

func (c Channel) String() string {
	return string(c)
}

// JobStatus is the lifecycle state of a delivery job.
//
// processing is transient: it exists only between the sweep claim step and
// the job being finalized as sent or failed.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusSent       JobStatus = "sent"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

func (s JobStatus) String() string {
	return string(s)
}

// Outcome is the result of one channel-send attempt.
//
// skipped records a push/SMS send bypassed because the user has no device
// token or phone number, or the provider is not configured. It is distinct
// from failed: a skip never drives the retry machine.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

func (o Outcome) String() string {
	return string(o)
}
