// Copyright (c) 2026 Catalog. All rights reserved.

package cache

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Manager is the façade's sole collaborator for result-cache reads, writes,
// and invalidation. It owns both tiers: the DB-indexed existence/expiration
// record and the filesystem page tree rooted at baseDir.
type Manager struct {
	baseDir string
	db      *pgxpool.Pool
}

// NewManager creates a Manager rooted at baseDir, using db for the
// tag_search_caches / tag_search_caches_tags index tables.
func NewManager(baseDir string, db *pgxpool.Pool) *Manager {
	return &Manager{baseDir: baseDir, db: db}
}

// Has reports whether key's entry directory, expiration.json, and
// config.json all exist.
func (m *Manager) Has(key string) bool {
	return fileExists(m.entryDir(key)) && fileExists(m.expirationPath(key)) && fileExists(m.configPath(key))
}

// HasPage additionally requires the page file for prefix/page to exist.
func (m *Manager) HasPage(key, prefix string, page int) bool {
	return m.Has(key) && fileExists(m.pagePath(key, prefix, page))
}

// Create builds a cache entry: DB row, then directory, then both metadata
// files, in that order. A failure at any step is returned to the caller,
// which treats cache population as best-effort and swallows the error.
func (m *Manager) Create(ctx context.Context, key string, tagValues []string, expiration Expiration, cfg Config) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}
	if err := ensureCacheRow(ctx, tx, key, tagValues, expiration.Expiration); err != nil {
		tx.Rollback(ctx)
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if err := os.MkdirAll(m.entryDir(key), 0o777); err != nil {
		return err
	}
	if err := writeJSONExclusive(m.expirationPath(key), expiration); err != nil {
		return err
	}
	return writeJSONExclusive(m.configPath(key), cfg)
}

// Config reads config.json, which is written once at Create time and never
// modified again, so it is read without any lock.
func (m *Manager) Config(key string) (Config, error) {
	var cfg Config
	if err := readJSONUnlocked(m.configPath(key), &cfg); err != nil {
		return Config{}, ErrMiss
	}
	return cfg, nil
}

// Get returns the id list for page under prefix, sliding the entry's
// expiration forward on a successful read. A page number outside
// [1, config.max-page] is a valid empty result that requires no file read.
// Any missing file or parse failure collapses to ErrMiss — the façade
// re-populates rather than distinguishing cold from corrupt.
func (m *Manager) Get(key string, page int, prefix string) ([]string, error) {
	cfg, err := m.Config(key)
	if err != nil {
		return nil, ErrMiss
	}
	if page < 1 || page > cfg.MaxPage {
		return []string{}, nil
	}

	var ids []string
	if err := readJSONUnlocked(m.pagePath(key, prefix, page), &ids); err != nil {
		return nil, ErrMiss
	}

	_ = m.Update(key, nil)
	return ids, nil
}

// Set writes a page's id list under an exclusive lock. The entry must
// already exist; Set never creates one.
func (m *Manager) Set(key, prefix string, page int, ids []string, extendExpiration bool) error {
	if !m.Has(key) {
		return ErrMiss
	}
	if err := writeJSONExclusive(m.pagePath(key, prefix, page), ids); err != nil {
		return err
	}
	if extendExpiration {
		return m.Update(key, nil)
	}
	return nil
}

// Update slides key's expiration forward by its interval, or overwrites it
// to override if given. The contention policy is critical: if a
// non-blocking exclusive lock on expiration.json can't be taken — a reader
// or another writer already holds it — Update does nothing and returns nil
// rather than waiting. A pinned entry (Interval == 0) is never slid.
func (m *Manager) Update(key string, override *time.Time) error {
	locked, err := tryLockExclusive(m.expirationPath(key))
	if err == ErrWouldBlock {
		return nil
	}
	if err != nil {
		return err
	}
	defer locked.close()

	var next Expiration
	if override != nil {
		next = Expiration{Expiration: *override, Interval: 0}
	} else {
		data, err := io.ReadAll(locked.f)
		if err != nil {
			return err
		}
		var current Expiration
		if err := unmarshalExpiration(data, &current); err != nil {
			return err
		}
		if current.pinned() {
			return nil
		}
		next = Expiration{
			Expiration: time.Now().Add(time.Duration(current.Interval) * time.Minute),
			Interval:   current.Interval,
		}
	}

	data, err := marshalExpiration(next)
	if err != nil {
		return err
	}
	if err := locked.f.Truncate(0); err != nil {
		return err
	}
	_, err = locked.f.WriteAt(data, 0)
	return err
}

// GetExpirationTime peeks at key's on-disk expiration without mutating it.
// ok is false when the file is locked by a concurrent writer (a transient
// condition — try again later); err is ErrCorrupt when the file is absent,
// and the underlying error when it cannot be opened, read, or parsed.
func (m *Manager) GetExpirationTime(key string) (t time.Time, ok bool, err error) {
	path := m.expirationPath(key)
	if !fileExists(path) {
		return time.Time{}, false, ErrCorrupt
	}

	locked, lockErr := tryLockShared(path)
	if lockErr == ErrWouldBlock {
		return time.Time{}, false, nil
	}
	if lockErr != nil {
		return time.Time{}, false, lockErr
	}
	defer locked.close()

	data, err := io.ReadAll(locked.f)
	if err != nil {
		return time.Time{}, false, err
	}
	var exp Expiration
	if err := unmarshalExpiration(data, &exp); err != nil {
		return time.Time{}, false, err
	}
	return exp.Expiration, true, nil
}

// Sweep reclaims directories that invalidation renamed out of the visible
// namespace (any entry whose basename contains a '.'), removing their
// contents and then the directory itself. Partial failures are left for the
// next sweep to retry.
func (m *Manager) Sweep() error {
	entries, err := os.ReadDir(m.baseDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() || !strings.Contains(entry.Name(), ".") {
			continue
		}
		m.deleteCacheFile(filepath.Join(m.baseDir, entry.Name()))
	}
	return nil
}

func (m *Manager) deleteCacheFile(dir string) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, f := range files {
		_ = os.Remove(filepath.Join(dir, f.Name()))
	}
	_ = os.Remove(dir)
}
