package service

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/voteflow/poll-system/internal/api/metrics"
	"github.com/voteflow/poll-system/internal/core/domain"
	"github.com/voteflow/poll-system/internal/core/ports"
	"github.com/voteflow/poll-system/internal/pkg/sanitize"
)

// PollService implements poll creation, voting, deletion and the two read
// views. All mutations run inside the store's Update so concurrent requests
// against the same document are serialized.
type PollService struct {
	polls  ports.PollStore
	logger zerolog.Logger
}

func NewPollService(polls ports.PollStore, logger zerolog.Logger) *PollService {
	return &PollService{polls: polls, logger: logger}
}

// List returns every poll as a summary. Summaries carry aggregate option
// counts only; individual ballots are never part of the list view.
func (s *PollService) List(ctx context.Context) ([]ports.PollSummary, error) {
	polls, err := s.polls.Load(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.PollSummary, 0, len(polls))
	for _, p := range polls {
		summaries = append(summaries, ports.PollSummary{
			ID:          p.ID,
			Title:       p.Title,
			Description: p.Description,
			CreatedAt:   p.CreatedAt,
			Creator:     p.Creator,
			Options:     p.Options,
			Multiple:    p.Multiple,
		})
	}
	return summaries, nil
}

// Get returns the full poll record, ballots included.
func (s *PollService) Get(ctx context.Context, id string) (*domain.Poll, error) {
	polls, err := s.polls.Load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexByID(polls, id)
	if idx < 0 {
		return nil, domain.ErrPollNotFound
	}
	poll := polls[idx]
	if poll.VotesByUser == nil {
		poll.VotesByUser = make(map[string]domain.Ballot)
	}
	return &poll, nil
}

// Create builds a new poll from the input and appends it to the store.
// Title, description, creator and every option text are sanitized; option
// ids are the positional indices stringified from "0".
func (s *PollService) Create(ctx context.Context, in ports.CreatePollInput) (*domain.Poll, error) {
	if in.Creator == "" {
		return nil, domain.ErrUnauthenticated
	}
	if in.Title == "" || len(in.Options) < 2 {
		return nil, domain.ErrInvalidInput
	}

	options := make([]domain.Option, len(in.Options))
	for i, text := range in.Options {
		options[i] = domain.Option{ID: strconv.Itoa(i), Text: sanitize.HTML(text)}
	}

	poll := domain.Poll{
		ID:          newPollID(),
		Title:       sanitize.HTML(in.Title),
		Description: sanitize.HTML(in.Description),
		CreatedAt:   time.Now().UTC(),
		Creator:     sanitize.HTML(in.Creator),
		Options:     options,
		Multiple:    in.Multiple,
		VotesByUser: make(map[string]domain.Ballot),
	}

	err := s.polls.Update(ctx, func(polls []domain.Poll) ([]domain.Poll, error) {
		return append(polls, poll), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("poll_id", poll.ID).Str("creator", poll.Creator).Int("options", len(poll.Options)).Msg("poll created")
	return &poll, nil
}

// Vote replaces the user's recorded selection for the poll. A second vote by
// the same user fully supersedes the first; there is no additive voting.
func (s *PollService) Vote(ctx context.Context, in ports.VoteInput) error {
	if in.Username == "" {
		return domain.ErrUnauthenticated
	}
	if len(in.OptionIDs) == 0 {
		return domain.ErrInvalidInput
	}

	mode := "single"
	err := s.polls.Update(ctx, func(polls []domain.Poll) ([]domain.Poll, error) {
		idx := indexByID(polls, in.PollID)
		if idx < 0 {
			return nil, domain.ErrPollNotFound
		}
		poll := &polls[idx]
		if poll.Multiple {
			mode = "multiple"
		}

		if poll.VotesByUser == nil {
			poll.VotesByUser = make(map[string]domain.Ballot)
		}

		// 1. Retract the previous ballot, if any. Counters are floored at
		// zero and ids that no longer match an option are skipped.
		if prev, ok := poll.VotesByUser[in.Username]; ok {
			for _, id := range prev.OptionIDs() {
				if opt := poll.OptionByID(id); opt != nil && opt.Votes > 0 {
					opt.Votes--
				}
			}
		}

		// 2. Count the new selection. Every submitted id that matches an
		// option is counted; the list is deliberately not clamped to one
		// entry on single-choice polls, and unknown ids are ignored.
		for i := range poll.Options {
			if slices.Contains(in.OptionIDs, poll.Options[i].ID) {
				poll.Options[i].Votes++
			}
		}

		// 3. Record the ballot: a scalar on single-choice polls, the full
		// list on multiple-choice polls.
		if poll.Multiple {
			poll.VotesByUser[in.Username] = domain.MultipleBallot(in.OptionIDs)
		} else {
			poll.VotesByUser[in.Username] = domain.SingleBallot(in.OptionIDs[0])
		}
		return polls, nil
	})
	if err != nil {
		return err
	}

	metrics.VotesCastTotal.WithLabelValues(mode).Inc()
	return nil
}

// Delete removes the poll. Only the creator may delete it.
func (s *PollService) Delete(ctx context.Context, pollID, username string) error {
	if username == "" {
		return domain.ErrUnauthenticated
	}

	err := s.polls.Update(ctx, func(polls []domain.Poll) ([]domain.Poll, error) {
		idx := indexByID(polls, pollID)
		if idx < 0 {
			return nil, domain.ErrPollNotFound
		}
		if polls[idx].Creator != username {
			return nil, domain.ErrForbidden
		}
		return slices.Delete(polls, idx, idx+1), nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("poll_id", pollID).Str("username", username).Msg("poll deleted")
	return nil
}

func indexByID(polls []domain.Poll, id string) int {
	for i := range polls {
		if polls[i].ID == id {
			return i
		}
	}
	return -1
}

// newPollID returns a time-ordered unique id: UUIDv7 combines a millisecond
// timestamp with random bits, which keeps ids collision-free in practice.
func newPollID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// entropy exhaustion; fall back to the clock
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return id.String()
}
