package domain

import (
	"encoding/json"
	"fmt"
)

// Ballot is a user's recorded selection on one poll. On a single-choice poll
// it carries exactly one option id and serializes as a bare JSON string; on a
// multiple-choice poll it carries the full list and serializes as an array.
// Both shapes are accepted when decoding, so documents written by earlier
// versions of the system parse unchanged.
type Ballot struct {
	ids   []string
	multi bool
}

// SingleBallot records a selection on a single-choice poll.
func SingleBallot(optionID string) Ballot {
	return Ballot{ids: []string{optionID}}
}

// MultipleBallot records a selection on a multiple-choice poll.
func MultipleBallot(optionIDs []string) Ballot {
	ids := make([]string, len(optionIDs))
	copy(ids, optionIDs)
	return Ballot{ids: ids, multi: true}
}

// OptionIDs returns the selected option ids in submission order.
func (b Ballot) OptionIDs() []string {
	ids := make([]string, len(b.ids))
	copy(ids, b.ids)
	return ids
}

// IsMultiple reports whether the ballot was recorded on a multiple-choice poll.
func (b Ballot) IsMultiple() bool {
	return b.multi
}

func (b Ballot) MarshalJSON() ([]byte, error) {
	if b.multi {
		return json.Marshal(b.ids)
	}
	if len(b.ids) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(b.ids[0])
}

func (b *Ballot) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*b = Ballot{ids: []string{single}}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("ballot must be a string or an array of strings: %w", err)
	}
	*b = Ballot{ids: many, multi: true}
	return nil
}
