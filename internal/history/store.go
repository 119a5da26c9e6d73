// Package history keeps the bounded list of recent submissions on local disk.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/riskscope/riskscope/pkg/scoring"
)

const (
	// Capacity is the maximum number of entries kept.
	Capacity = 5
	// DefaultKey is the storage key the list lives under.
	DefaultKey = "analysisHistory"
)

// Entry is one saved submission.
type Entry struct {
	ID          string         `json:"id"`
	SubmittedAt time.Time      `json:"submitted_at"`
	Input       scoring.Input  `json:"input"`
	Result      scoring.Result `json:"result"`
}

// ErrNoMatch is returned by Find when no entry ID starts with the prefix.
var ErrNoMatch = errors.New("history: no matching entry")

// Store reads and writes the history list through a Backend.
type Store struct {
	backend Backend
	key     string
	now     func() time.Time

	mu sync.Mutex
}

// NewStore creates a Store over backend. An empty key selects DefaultKey.
func NewStore(backend Backend, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{backend: backend, key: key, now: time.Now}
}

// Load returns the saved entries, newest first.
// A missing or unreadable list yields an empty slice.
func (s *Store) Load(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) ([]Entry, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, ErrNotFound) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("discarding unreadable history", "key", s.key, "error", err)
		return []Entry{}, nil
	}
	if entries == nil {
		entries = []Entry{}
	}
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	return entries, nil
}

// Save replaces the stored list, keeping at most Capacity entries.
func (s *Store) Save(ctx context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, entries)
}

func (s *Store) save(ctx context.Context, entries []Entry) error {
	if len(entries) > Capacity {
		entries = entries[:Capacity]
	}
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Add prepends a new entry for in and its result, drops the oldest beyond
// Capacity, and persists the list. The stored entry is returned.
func (s *Store) Add(ctx context.Context, in scoring.Input, res scoring.Result) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load(ctx)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		ID:          uuid.NewString(),
		SubmittedAt: s.now().UTC(),
		Input:       in,
		Result:      res,
	}
	next := make([]Entry, 0, Capacity)
	next = append(next, e)
	next = append(next, entries...)

	if err := s.save(ctx, next); err != nil {
		return Entry{}, err
	}
	slog.Debug("history entry added", "id", e.ID, "level", res.Level)
	return e, nil
}

// Find returns the entry whose ID starts with prefix.
// A prefix matching more than one entry is an error.
func (s *Store) Find(ctx context.Context, prefix string) (Entry, error) {
	entries, err := s.Load(ctx)
	if err != nil {
		return Entry{}, err
	}
	if prefix == "" {
		return Entry{}, fmt.Errorf("%w: empty id", ErrNoMatch)
	}

	var found []Entry
	for _, e := range entries {
		if strings.HasPrefix(e.ID, prefix) {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %q", ErrNoMatch, prefix)
	case 1:
		return found[0], nil
	default:
		return Entry{}, fmt.Errorf("id prefix %q matches %d entries", prefix, len(found))
	}
}

// Clear removes every entry.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.backend.Close()
}
