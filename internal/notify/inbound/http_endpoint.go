package inbound

import (
	"strings"

	"github.com/macthedonald/trynotifi-sub000/internal/notify/entity"
	"github.com/macthedonald/trynotifi-sub000/internal/notify/usecase"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goerror"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/jwt"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/router"
	"github.com/samber/lo"
)

type HTTPEndpoint struct {
	uc uc
}

func authUserID(r *router.Request) (int64, error) {
	claims := jwt.GetAuth(r.Context())
	if claims == nil {
		return 0, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	return claims.UserID, nil
}

// Schedule replaces the pending notification jobs of one reminder or event.
func (h *HTTPEndpoint) Schedule(r *router.Request) (any, error) {
	userID, err := authUserID(r)
	if err != nil {
		return nil, err
	}

	var req ScheduleRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Schedule(r.Context(), usecase.ScheduleInput{
		UserID:     userID,
		ReminderID: req.ReminderID,
		EventID:    req.EventID,
		DueAt:      req.DueAt,
		LeadTimes:  req.LeadTimes,
		Channels:   req.Channels,
	})
	if err != nil {
		return nil, err
	}

	return ScheduleResponse{Scheduled: out.Scheduled}, nil
}

// Cancel moves the pending jobs of one reminder or event to cancelled.
func (h *HTTPEndpoint) Cancel(r *router.Request) (any, error) {
	userID, err := authUserID(r)
	if err != nil {
		return nil, err
	}

	var req CancelRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Cancel(r.Context(), usecase.CancelInput{
		UserID:     userID,
		ReminderID: req.ReminderID,
		EventID:    req.EventID,
	})
	if err != nil {
		return nil, err
	}

	return CancelResponse{Cancelled: out.Cancelled}, nil
}

// ListJobs returns the caller's delivery jobs, optionally filtered by status.
func (h *HTTPEndpoint) ListJobs(r *router.Request) (any, error) {
	userID, err := authUserID(r)
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}
	offset, err := r.GetQueryInt32("offset")
	if err != nil {
		return nil, err
	}

	var statuses []string
	if raw := r.GetQuery("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	in := usecase.ListJobsInput{
		UserID:   userID,
		Statuses: statuses,
		Limit:    limit,
		Offset:   offset,
	}
	if id, err := r.GetQueryInt64("reminder_id"); err != nil {
		return nil, err
	} else if id != 0 {
		in.ReminderID = &id
	}
	if id, err := r.GetQueryInt64("event_id"); err != nil {
		return nil, err
	} else if id != 0 {
		in.EventID = &id
	}

	out, err := h.uc.ListJobs(r.Context(), in)
	if err != nil {
		return nil, err
	}

	return lo.Map(out.Jobs, func(job entity.DeliveryJob, _ int) JobResponse {
		return newJobResponse(job)
	}), nil
}

// History returns the caller's per-channel delivery attempts, newest first.
func (h *HTTPEndpoint) History(r *router.Request) (any, error) {
	userID, err := authUserID(r)
	if err != nil {
		return nil, err
	}

	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}
	offset, err := r.GetQueryInt32("offset")
	if err != nil {
		return nil, err
	}

	out, err := h.uc.History(r.Context(), usecase.HistoryInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	return lo.Map(out.Entries, func(entry entity.LogEntry, _ int) LogEntryResponse {
		return newLogEntryResponse(entry)
	}), nil
}

// Sweep runs one delivery pass over all due jobs. Called by the external cron
// scheduler, authenticated with a shared secret header instead of a JWT.
func (h *HTTPEndpoint) Sweep(r *router.Request) (any, error) {
	return h.uc.Sweep(r.Context())
}
