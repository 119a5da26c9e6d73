package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openBackends(t *testing.T) map[string]Backend {
	t.Helper()
	ctx := context.Background()
	out := map[string]Backend{}
	for _, kind := range []string{KindBolt, KindSQLite, KindFile} {
		b, err := Open(ctx, kind, t.TempDir())
		if err != nil {
			t.Fatalf("Open(%s): %v", kind, err)
		}
		t.Cleanup(func() { b.Close() })
		out[kind] = b
	}
	return out
}

func TestBackendPutGet(t *testing.T) {
	ctx := context.Background()
	for kind, b := range openBackends(t) {
		t.Run(kind, func(t *testing.T) {
			data := []byte(`[{"id":"a"}]`)
			if err := b.Put(ctx, DefaultKey, data); err != nil {
				t.Fatalf("Put: %v", err)
			}
			got, err := b.Get(ctx, DefaultKey)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != string(data) {
				t.Errorf("Get = %q, want %q", got, data)
			}

			// Overwrite replaces the value.
			if err := b.Put(ctx, DefaultKey, []byte(`[]`)); err != nil {
				t.Fatalf("Put (overwrite): %v", err)
			}
			got, err = b.Get(ctx, DefaultKey)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if string(got) != `[]` {
				t.Errorf("Get after overwrite = %q, want []", got)
			}
		})
	}
}

func TestBackendGetNotFound(t *testing.T) {
	ctx := context.Background()
	for kind, b := range openBackends(t) {
		t.Run(kind, func(t *testing.T) {
			_, err := b.Get(ctx, "missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
			}
		})
	}
}

func TestBackendDelete(t *testing.T) {
	ctx := context.Background()
	for kind, b := range openBackends(t) {
		t.Run(kind, func(t *testing.T) {
			if err := b.Put(ctx, "k", []byte("v")); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if err := b.Delete(ctx, "k"); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := b.Get(ctx, "k"); !errors.Is(err, ErrNotFound) {
				t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
			}
			// Deleting again is a no-op.
			if err := b.Delete(ctx, "k"); err != nil {
				t.Errorf("Delete (missing): %v", err)
			}
		})
	}
}

func TestOpenUnknownKind(t *testing.T) {
	if _, err := Open(context.Background(), "redis", t.TempDir()); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenCreatesFiles(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		kind string
		file string
	}{
		{KindBolt, "history.db"},
		{KindSQLite, "history.sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			dir := t.TempDir()
			b, err := Open(ctx, tt.kind, dir)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer b.Close()
			if _, err := os.Stat(filepath.Join(dir, tt.file)); err != nil {
				t.Errorf("expected %s: %v", tt.file, err)
			}
		})
	}
}

func TestFileStorageLayout(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStorage(dir)
	if err := s.Put(context.Background(), "analysis/History", []byte("[]")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	want := filepath.Join(dir, "analysis_History.json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("expected file at %s: %v", want, err)
	}
}
