package domain

import (
	"errors"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")
var ErrPollNotFound = errors.New("poll not found")
var ErrForbidden = errors.New("access forbidden")
var ErrUnauthenticated = errors.New("not logged in")

// Option is a single answer on a poll. Its ID is the positional index at
// creation time, stringified ("0", "1", ...), and never changes afterwards.
type Option struct {
	ID    string `json:"id" bson:"id"`
	Text  string `json:"text" bson:"text"`
	Votes int    `json:"votes" bson:"votes"`
}

// Poll is the core aggregate: a titled question with ordered options,
// aggregate vote counters, and the per-user ballot record.
type Poll struct {
	ID          string            `json:"id" bson:"id"`
	Title       string            `json:"title" bson:"title"`
	Description string            `json:"description" bson:"description"`
	CreatedAt   time.Time         `json:"createdAt" bson:"created_at"`
	Creator     string            `json:"creator" bson:"creator"`
	Options     []Option          `json:"options" bson:"options"`
	Multiple    bool              `json:"multiple" bson:"multiple"`
	VotesByUser map[string]Ballot `json:"votesByUser" bson:"votes_by_user"`
}

// OptionByID returns a pointer into Options, or nil when no option has that id.
func (p *Poll) OptionByID(id string) *Option {
	for i := range p.Options {
		if p.Options[i].ID == id {
			return &p.Options[i]
		}
	}
	return nil
}
