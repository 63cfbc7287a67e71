package inbound

import (
	"github.com/macthedonald/trynotifi-sub000/internal/assistant/usecase"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/goerror"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/jwt"
	"github.com/macthedonald/trynotifi-sub000/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

type ApplyActionRequest struct {
	Text string `json:"text"`
}

type ApplyActionResponse struct {
	CleanedText string `json:"cleaned_text"`
	Applied     bool   `json:"applied"`
	ReminderID  int64  `json:"reminder_id,string,omitempty"`
	Scheduled   int    `json:"scheduled"`
}

// ApplyAction processes assistant reply text: strips the embedded schedule
// directive and creates the reminder plus its notifications when one exists.
func (h *HTTPEndpoint) ApplyAction(r *router.Request) (any, error) {
	claims := jwt.GetAuth(r.Context())
	if claims == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	var req ApplyActionRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.ApplyAction(r.Context(), usecase.ApplyActionInput{
		UserID: claims.UserID,
		Text:   req.Text,
	})
	if err != nil {
		return nil, err
	}

	return ApplyActionResponse{
		CleanedText: out.CleanedText,
		Applied:     out.Applied,
		ReminderID:  out.ReminderID,
		Scheduled:   out.Scheduled,
	}, nil
}
