// Package jsonfile persists each collection as one flat JSON document on
// local storage, read and written wholesale on every operation.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/voteflow/poll-system/internal/core/domain"
)

// Store persists a []T collection in a single JSON file.
//
// Load returns an empty collection when the backing file does not exist yet.
// Save overwrites the file atomically (temp file + rename, no partial
// writes). Update holds the document mutex around a full load-mutate-save
// cycle, so concurrent mutations of the same document are serialized instead
// of silently overwriting each other.
type Store[T any] struct {
	path string
	mu   sync.Mutex
}

func New[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// NewPollStore returns the poll document store rooted at dir.
func NewPollStore(dir string) *Store[domain.Poll] {
	return New[domain.Poll](filepath.Join(dir, "polls.json"))
}

// NewUserStore returns the credential document store rooted at dir.
func NewUserStore(dir string) *Store[domain.User] {
	return New[domain.User](filepath.Join(dir, "users.json"))
}

func (s *Store[T]) Load(_ context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store[T]) Save(_ context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(items)
}

func (s *Store[T]) Update(_ context.Context, fn func([]T) ([]T, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	next, err := fn(items)
	if err != nil {
		return err
	}
	return s.save(next)
}

func (s *Store[T]) load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		// Corrupt document: no recovery path, the operator must fix the file.
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (s *Store[T]) save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
