package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgerror"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgroutine"
)

func newTestStore(t *testing.T, ttl time.Duration) *TempStore {
	t.Helper()

	s, err := NewTempStore(context.Background(), TempConfig{
		Dir:    t.TempDir(),
		TTL:    ttl,
		Runner: pkgroutine.NewManager(2),
	})
	if err != nil {
		t.Fatalf("NewTempStore() err = %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()

	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}

	t.Fatalf("stat %s: %v", path, err)
	return false
}

func TestTempStore_Save_And_Remove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t, time.Minute)

	stored, err := s.Save(ctx, "Report Final.csv", strings.NewReader("a,b\n1,2\n"))
	if err != nil {
		t.Fatalf("Save() err = %v", err)
	}

	if stored.Token == "" {
		t.Fatal("Save() expected a token")
	}
	if stored.Name != "Report Final.csv" {
		t.Fatalf("Save() name = %q", stored.Name)
	}
	if stored.Size != 8 {
		t.Fatalf("Save() size = %d, want 8", stored.Size)
	}
	if filepath.Ext(stored.Path) != ".csv" {
		t.Fatalf("Save() path = %q, want .csv extension", stored.Path)
	}
	if !fileExists(t, stored.Path) {
		t.Fatalf("Save() file %s does not exist", stored.Path)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	data, err := os.ReadFile(stored.Path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "a,b\n1,2\n" {
		t.Fatalf("saved content = %q", data)
	}

	if err := s.Remove(ctx, stored.Token); err != nil {
		t.Fatalf("Remove() err = %v", err)
	}
	if fileExists(t, stored.Path) {
		t.Fatal("Remove() left file on disk")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}

	if err := s.Remove(ctx, stored.Token); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("Remove() twice err = %v, want ErrNotFound", err)
	}
}

func TestNewTempStore_SweepsLeftovers(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	leftover := filepath.Join(dir, "abandoned.csv")
	if err := os.WriteFile(leftover, []byte("a,b\n1,2\n"), 0o644); err != nil {
		t.Fatalf("write leftover: %v", err)
	}

	s, err := NewTempStore(context.Background(), TempConfig{
		Dir:    dir,
		TTL:    time.Minute,
		Runner: pkgroutine.NewManager(2),
	})
	if err != nil {
		t.Fatalf("NewTempStore() err = %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})

	if fileExists(t, leftover) {
		t.Fatal("expected leftover file to be swept")
	}
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
}

func TestTempStore_Remove_Unknown(t *testing.T) {
	t.Parallel()

	s := newTestStore(t, time.Minute)

	if err := s.Remove(context.Background(), "nope"); !errors.Is(err, pkgerror.ErrNotFound) {
		t.Fatalf("Remove() err = %v, want ErrNotFound", err)
	}
}

func TestTempStore_ExpiredFilesAreRemoved(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newTestStore(t, 20*time.Millisecond)

	stored, err := s.Save(ctx, "short.csv", strings.NewReader("a\n1\n"))
	if err != nil {
		t.Fatalf("Save() err = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Len() == 0 && !fileExists(t, stored.Path) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Fatalf("expired file still present: len=%d exists=%v", s.Len(), fileExists(t, stored.Path))
}

func TestTempStore_Close_RemovesFiles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, err := NewTempStore(ctx, TempConfig{
		Dir:    t.TempDir(),
		TTL:    time.Minute,
		Runner: pkgroutine.NewManager(2),
	})
	if err != nil {
		t.Fatalf("NewTempStore() err = %v", err)
	}

	first, err := s.Save(ctx, "one.csv", strings.NewReader("a\n1\n"))
	if err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	second, err := s.Save(ctx, "two.csv", strings.NewReader("b\n2\n"))
	if err != nil {
		t.Fatalf("Save() err = %v", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() err = %v", err)
	}

	if fileExists(t, first.Path) || fileExists(t, second.Path) {
		t.Fatal("Close() left temp files on disk")
	}
}
