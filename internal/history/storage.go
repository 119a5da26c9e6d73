package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrNotFound is returned by a Backend when no value is stored under a key.
var ErrNotFound = errors.New("history: key not found")

// Backend abstracts the local key/value store beneath a Store.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Backend kinds accepted by Open.
const (
	KindBolt   = "bolt"
	KindSQLite = "sqlite"
	KindFile   = "file"
)

// Open creates the backend of the given kind rooted at dir.
func Open(ctx context.Context, kind, dir string) (Backend, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	switch kind {
	case KindBolt, "":
		return NewBoltStorage(filepath.Join(dir, "history.db"))
	case KindSQLite:
		return NewSQLiteStorage(ctx, filepath.Join(dir, "history.sqlite"))
	case KindFile:
		return NewFileStorage(filepath.Join(dir, "history")), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", kind)
	}
}

// FileStorage implements Backend with one JSON file per key.
// Useful for development and for inspecting history by hand.
type FileStorage struct {
	BaseDir string
}

// NewFileStorage creates a FileStorage rooted at the given directory.
func NewFileStorage(baseDir string) *FileStorage {
	return &FileStorage{BaseDir: baseDir}
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.BaseDir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

// Get reads the value stored under key.
func (s *FileStorage) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Put writes the value through a temp file so readers never see a partial write.
func (s *FileStorage) Put(_ context.Context, key string, data []byte) error {
	if err := os.MkdirAll(s.BaseDir, 0o700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	path := s.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. Missing keys are not an error.
func (s *FileStorage) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStorage) Close() error { return nil }
