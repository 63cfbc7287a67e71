package parse

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/macthedonald/trynotifi-sub000/internal/assistant/entity"
)

const actionType = "create_reminder"

var (
	fencedActionRe = regexp.MustCompile("(?s)```schedule-action[ \t]*\n(.*?)```")
	seamRe         = regexp.MustCompile(`\n{3,}`)
)

type actionPayload struct {
	Action      string   `json:"action"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Time        string   `json:"time"`
	Recurrence  string   `json:"recurrence"`
	Priority    string   `json:"priority"`
	LeadTimes   []int32  `json:"lead_times"`
	Channels    []string `json:"channels"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location"`
}

// ExtractAction pulls the first fenced schedule-action block out of reply
// text. It returns the parsed action (nil when there is no usable block) and
// the text with the block removed and the seam tidied up. A malformed block
// is still stripped so users never see machine directives.
func ExtractAction(text string) (*entity.ScheduleAction, string) {
	m := fencedActionRe.FindStringSubmatchIndex(text)
	if m == nil {
		return nil, text
	}

	raw := text[m[2]:m[3]]
	cleaned := cleanSeam(text[:m[0]] + text[m[1]:])

	payload, ok := decodePayload(raw)
	if !ok || payload.Action != actionType || strings.TrimSpace(payload.Title) == "" {
		return nil, cleaned
	}

	return &entity.ScheduleAction{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		TimeToken:   strings.TrimSpace(payload.Time),
		Recurrence:  strings.TrimSpace(payload.Recurrence),
		Priority:    strings.TrimSpace(payload.Priority),
		LeadTimes:   payload.LeadTimes,
		Channels:    payload.Channels,
		Tags:        payload.Tags,
		Location:    strings.TrimSpace(payload.Location),
	}, cleaned
}

func decodePayload(raw string) (actionPayload, bool) {
	var payload actionPayload
	if err := json.Unmarshal([]byte(raw), &payload); err == nil {
		return payload, true
	}

	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return payload, false
	}
	if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
		return payload, false
	}

	return payload, true
}

func cleanSeam(text string) string {
	return strings.TrimSpace(seamRe.ReplaceAllString(text, "\n\n"))
}
