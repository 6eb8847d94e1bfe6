package mongo

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voteflow/poll-system/internal/core/domain"
)

const documentsCollection = "documents"

// Store persists an entire collection as ONE BSON document, keyed by a fixed
// id. This mirrors the flat-file driver's contract exactly: Load reads the
// whole collection, Save replaces it wholesale (ReplaceOne with upsert), and
// Update serializes load-mutate-save behind a per-document mutex.
type Store[T any] struct {
	coll *mongo.Collection
	key  string
	mu   sync.Mutex
}

type document[T any] struct {
	Key   string `bson:"_id"`
	Items []T    `bson:"items"`
}

// NewPollStore returns the poll document store.
func NewPollStore(db *mongo.Database) *Store[domain.Poll] {
	return &Store[domain.Poll]{coll: db.Collection(documentsCollection), key: "polls"}
}

// NewUserStore returns the credential document store.
func NewUserStore(db *mongo.Database) *Store[domain.User] {
	return &Store[domain.User]{coll: db.Collection(documentsCollection), key: "users"}
}

func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store[T]) Save(ctx context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, items)
}

func (s *Store[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return s.save(ctx, next)
}

func (s *Store[T]) load(ctx context.Context) ([]T, error) {
	var doc document[T]
	err := s.coll.FindOne(ctx, bson.M{"_id": s.key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	if doc.Items == nil {
		return []T{}, nil
	}
	return doc.Items, nil
}

func (s *Store[T]) save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": s.key},
		document[T]{Key: s.key, Items: items},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}
