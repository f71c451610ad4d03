package store

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/tranthaituong/DataAnalystAssistant/internal/dataset/entity"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkgerror"
	"github.com/tranthaituong/DataAnalystAssistant/internal/pkg/pkguid"
)

const (
	defaultTTL     = 15 * time.Minute
	defaultDirName = "datavalidator"
)

type Runner interface {
	Go(ctx context.Context, f func(ctx context.Context) error)
}

type TempConfig struct {
	Dir    string
	TTL    time.Duration
	Names  pkguid.StringID
	Runner Runner
}

type TempStore struct {
	dir   string
	names pkguid.StringID
	cache *ttlcache.Cache[string, entity.StoredFile]
}

func NewTempStore(ctx context.Context, cfg TempConfig) (*TempStore, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), defaultDirName)
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}

	names := cfg.Names
	if names == nil {
		names = pkguid.NewNanoID(16)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	sweepLeftovers(ctx, dir)

	cache := ttlcache.New[string, entity.StoredFile](
		ttlcache.WithTTL[string, entity.StoredFile](ttl),
		ttlcache.WithDisableTouchOnHit[string, entity.StoredFile](),
	)

	cache.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, entity.StoredFile]) {
		// Deletes are unlinked by the caller; only expirations are cleaned here.
		if reason != ttlcache.EvictionReasonExpired {
			return
		}

		stored := item.Value()
		if err := os.Remove(stored.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.ErrorContext(ctx, "failed to remove expired temp file", "token", stored.Token, "error", err)
			return
		}

		slog.InfoContext(ctx, "expired temp file removed", "token", stored.Token)
	})

	cfg.Runner.Go(ctx, func(ctx context.Context) error {
		cache.Start()
		return nil
	})

	return &TempStore{
		dir:   dir,
		names: names,
		cache: cache,
	}, nil
}

// sweepLeftovers drops files abandoned by a previous run; nothing references
// them once the registry starts empty.
func sweepLeftovers(ctx context.Context, dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.WarnContext(ctx, "failed to scan temp dir", "dir", dir, "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			slog.WarnContext(ctx, "failed to sweep leftover temp file", "file", entry.Name(), "error", err)
			continue
		}
		slog.InfoContext(ctx, "swept leftover temp file", "file", entry.Name())
	}
}

func (s *TempStore) Save(ctx context.Context, name string, r io.Reader) (entity.StoredFile, error) {
	token := s.names.Generate()
	path := filepath.Join(s.dir, token+filepath.Ext(filepath.Base(name)))

	f, err := os.Create(path)
	if err != nil {
		return entity.StoredFile{}, err
	}

	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return entity.StoredFile{}, err
	}

	stored := entity.StoredFile{
		Token:   token,
		Name:    filepath.Base(name),
		Path:    path,
		Size:    size,
		SavedAt: time.Now().Unix(),
	}
	s.cache.Set(token, stored, ttlcache.DefaultTTL)

	return stored, nil
}

func (s *TempStore) Remove(ctx context.Context, token string) error {
	item := s.cache.Get(token)
	if item == nil {
		return pkgerror.ErrNotFound
	}

	stored := item.Value()
	s.cache.Delete(token)

	if err := os.Remove(stored.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func (s *TempStore) Len() int {
	return s.cache.Len()
}

func (s *TempStore) Close() error {
	for _, item := range s.cache.Items() {
		stored := item.Value()
		if err := os.Remove(stored.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to remove temp file on shutdown", "token", stored.Token, "error", err)
		}
	}

	s.cache.Stop()

	return nil
}
