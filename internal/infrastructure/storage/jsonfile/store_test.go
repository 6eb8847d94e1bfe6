package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voteflow/poll-system/internal/core/domain"
)

func TestStore_LoadMissingFileReturnsEmpty(t *testing.T) {
	store := NewPollStore(t.TempDir())

	polls, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if polls == nil || len(polls) != 0 {
		t.Fatalf("expected empty collection, got %v", polls)
	}
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store := NewPollStore(t.TempDir())

	polls := []domain.Poll{{
		ID:      "p1",
		Title:   "Lunch?",
		Creator: "alice",
		Options: []domain.Option{{ID: "0", Text: "Pizza", Votes: 1}, {ID: "1", Text: "Sushi"}},
		VotesByUser: map[string]domain.Ballot{
			"alice": domain.SingleBallot("0"),
			"bob":   domain.MultipleBallot([]string{"0", "1"}),
		},
	}}

	if err := store.Save(context.Background(), polls); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "p1" || loaded[0].Options[0].Votes != 1 {
		t.Fatalf("unexpected round trip: %+v", loaded)
	}

	alice := loaded[0].VotesByUser["alice"]
	if alice.IsMultiple() || alice.OptionIDs()[0] != "0" {
		t.Fatalf("single ballot mangled: %+v", alice)
	}
	bob := loaded[0].VotesByUser["bob"]
	if !bob.IsMultiple() || len(bob.OptionIDs()) != 2 {
		t.Fatalf("multiple ballot mangled: %+v", bob)
	}
}

// Single-choice ballots must serialize as bare strings and multiple-choice
// ballots as arrays, the shape the historical documents use.
func TestStore_DocumentFormat(t *testing.T) {
	dir := t.TempDir()
	store := NewPollStore(dir)

	polls := []domain.Poll{{
		ID:      "p1",
		Title:   "t",
		Options: []domain.Option{{ID: "0", Text: "a"}},
		VotesByUser: map[string]domain.Ballot{
			"alice": domain.SingleBallot("0"),
			"bob":   domain.MultipleBallot([]string{"0"}),
		},
	}}
	if err := store.Save(context.Background(), polls); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "polls.json"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	doc := string(raw)
	if !strings.Contains(doc, `"alice": "0"`) {
		t.Fatalf("expected scalar ballot in document, got:\n%s", doc)
	}
	if !strings.Contains(doc, `"bob": [`) {
		t.Fatalf("expected array ballot in document, got:\n%s", doc)
	}
}

func TestStore_UpdateErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	store := NewUserStore(dir)

	if err := store.Save(context.Background(), []domain.User{{Username: "alice"}}); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	boom := errors.New("boom")
	err := store.Update(context.Background(), func(users []domain.User) ([]domain.User, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected update error surfaced, got %v", err)
	}

	users, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(users) != 1 || users[0].Username != "alice" {
		t.Fatalf("document must be untouched after failed update: %+v", users)
	}
}

func TestStore_UpdateAppends(t *testing.T) {
	store := NewUserStore(t.TempDir())

	for _, name := range []string{"alice", "bob"} {
		err := store.Update(context.Background(), func(users []domain.User) ([]domain.User, error) {
			return append(users, domain.User{Username: name}), nil
		})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
	}

	users, _ := store.Load(context.Background())
	if len(users) != 2 || users[0].Username != "alice" || users[1].Username != "bob" {
		t.Fatalf("unexpected collection: %+v", users)
	}
}

func TestStore_MalformedDocumentIsFatal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "polls.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := NewPollStore(dir).Load(context.Background()); err == nil {
		t.Fatalf("expected parse error for malformed document")
	}
}
