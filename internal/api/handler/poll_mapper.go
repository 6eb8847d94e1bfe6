package handler

import (
	"github.com/voteflow/poll-system/internal/core/domain"
	"github.com/voteflow/poll-system/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createPollRequest, creator string) ports.CreatePollInput {
	options := make([]string, len(req.Options))
	for i, o := range req.Options {
		options[i] = string(o)
	}
	return ports.CreatePollInput{
		Creator:     creator,
		Title:       req.Title,
		Description: req.Description,
		Options:     options,
		Multiple:    req.Multiple,
	}
}

// --- Service result → HTTP response ---

func toOptionResponses(options []domain.Option) []optionResponse {
	out := make([]optionResponse, len(options))
	for i, o := range options {
		out[i] = optionResponse{ID: o.ID, Text: o.Text, Votes: o.Votes}
	}
	return out
}

func toSummaryResponse(s ports.PollSummary) pollSummaryResponse {
	return pollSummaryResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		Creator:     s.Creator,
		Options:     toOptionResponses(s.Options),
		Multiple:    s.Multiple,
	}
}

func toListResponse(summaries []ports.PollSummary) []pollSummaryResponse {
	out := make([]pollSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = toSummaryResponse(s)
	}
	return out
}

func toDetailResponse(p *domain.Poll) pollDetailResponse {
	ballots := p.VotesByUser
	if ballots == nil {
		ballots = make(map[string]domain.Ballot)
	}
	return pollDetailResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		Creator:     p.Creator,
		Options:     toOptionResponses(p.Options),
		Multiple:    p.Multiple,
		VotesByUser: ballots,
	}
}
