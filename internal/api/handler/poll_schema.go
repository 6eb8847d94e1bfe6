package handler

import (
	"encoding/json"
	"time"

	"github.com/voteflow/poll-system/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// successResponse acknowledges a mutation that returns no entity.
type successResponse struct {
	Success bool `json:"success"`
}

// --- Request types ---

// optionText accepts both historical wire shapes for a poll option:
// a bare string ("Pizza") or an object ({"text": "Pizza"}).
type optionText string

func (o *optionText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = optionText(s)
		return nil
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*o = optionText(obj.Text)
	return nil
}

type createPollRequest struct {
	Title       string       `json:"title"       validate:"required"`
	Description string       `json:"description"`
	Options     []optionText `json:"options"     validate:"min=2"`
	Multiple    bool         `json:"multiple"`
}

type voteRequest struct {
	OptionIDs []string `json:"optionIds" validate:"required,min=1"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type optionResponse struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Votes int    `json:"votes"`
}

// pollSummaryResponse is the list item. It has no votesByUser field: the
// list endpoint exposes aggregate counts only, never individual ballots.
type pollSummaryResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"createdAt"`
	Creator     string           `json:"creator"`
	Options     []optionResponse `json:"options"`
	Multiple    bool             `json:"multiple"`
}

// pollDetailResponse is the single-poll view, ballots included.
type pollDetailResponse struct {
	ID          string                   `json:"id"`
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	CreatedAt   time.Time                `json:"createdAt"`
	Creator     string                   `json:"creator"`
	Options     []optionResponse         `json:"options"`
	Multiple    bool                     `json:"multiple"`
	VotesByUser map[string]domain.Ballot `json:"votesByUser"`
}
