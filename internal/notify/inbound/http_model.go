package inbound

import (
	"time"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/samber/lo"
)

type ScheduleRequest struct {
	ReminderID *int64    `json:"reminder_id,string,omitempty"`
	EventID    *int64    `json:"event_id,string,omitempty"`
	DueAt      time.Time `json:"due_at"`
	LeadTimes  []int32   `json:"lead_times"`
	Channels   []string  `json:"channels"`
}

type ScheduleResponse struct {
	Scheduled int `json:"scheduled"`
}

type CancelRequest struct {
	ReminderID *int64 `json:"reminder_id,string,omitempty"`
	EventID    *int64 `json:"event_id,string,omitempty"`
}

type CancelResponse struct {
	Cancelled int64 `json:"cancelled"`
}

type JobResponse struct {
	ID              int64      `json:"id,string"`
	ReminderID      *int64     `json:"reminder_id,string,omitempty"`
	EventID         *int64     `json:"event_id,string,omitempty"`
	FireAt          time.Time  `json:"fire_at"`
	LeadTimeMinutes int32      `json:"lead_time_minutes"`
	Channels        []string   `json:"channels"`
	Status          string     `json:"status"`
	RetryCount      int32      `json:"retry_count"`
	ErrorDetail     string     `json:"error_detail,omitempty"`
	AttemptedAt     *time.Time `json:"attempted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func newJobResponse(job entity.DeliveryJob) JobResponse {
	return JobResponse{
		ID:              job.ID,
		ReminderID:      job.Target.ReminderID,
		EventID:         job.Target.EventID,
		FireAt:          job.FireAt,
		LeadTimeMinutes: job.LeadTimeMinutes,
		Channels: lo.Map(job.Channels, func(ch entity.Channel, _ int) string {
			return ch.String()
		}),
		Status:      job.Status.String(),
		RetryCount:  job.RetryCount,
		ErrorDetail: job.ErrorDetail,
		AttemptedAt: job.AttemptedAt,
		CreatedAt:   job.CreatedAt,
	}
}

type LogEntryResponse struct {
	ID        int64     `json:"id,string"`
	JobID     int64     `json:"job_id,string"`
	Channel   string    `json:"channel"`
	Outcome   string    `json:"outcome"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func newLogEntryResponse(entry entity.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:        entry.ID,
		JobID:     entry.JobID,
		Channel:   entry.Channel.String(),
		Outcome:   entry.Outcome.String(),
		Detail:    entry.Detail,
		CreatedAt: entry.CreatedAt,
	}
}
