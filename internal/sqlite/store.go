// Package sqlite implements the local store over SQLite: a persistent,
// offline cache with two collections, the singleton profile snapshot and
// the cart. Every public operation runs in its own transaction scoped to
// one collection, committed or rolled back on all exit paths.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/krishna-stha/MOMO/pkg/types"
)

// DBFileName is the database file created inside the data directory.
const DBFileName = "momo.db"

// schemaVersion is written to PRAGMA user_version on first open.
const schemaVersion = 1

// Compile-time interface check: Store must implement types.Store.
var _ types.Store = (*Store)(nil)

// Store is the SQLite-backed local store. The zero value is not usable;
// call New, then Open.
type Store struct {
	mu      sync.Mutex
	dataDir string
	db      *sql.DB
	opened  bool
	closed  bool
}

// New creates a Store rooted at the given data directory. The directory
// and database are created on Open, not here.
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// Open creates the data directory and database on first run and applies
// the schema. Idempotent: a second call on an open store succeeds without
// reopening, and concurrent callers serialize on the store mutex so they
// all observe one initialization outcome. Returns ErrStorageUnavailable
// when the directory or database cannot be created.
func (s *Store) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrStoreClosed
	}
	if s.opened {
		return nil
	}

	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating data dir: %v", types.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(s.dataDir, DBFileName))
	if err != nil {
		return fmt.Errorf("%w: opening database: %v", types.ErrStorageUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("%w: pinging database: %v", types.ErrStorageUnavailable, err)
	}

	if err := applySchema(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("%w: applying schema: %v", types.ErrStorageUnavailable, err)
	}

	s.db = db
	s.opened = true
	return nil
}

// Close releases the database. Idempotent: multiple calls succeed. After
// Close, operations return ErrStoreClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.opened || s.closed {
		s.closed = true
		return nil
	}
	s.closed = true
	s.opened = false
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	return nil
}

// Reset drops all local state: the profile snapshot and every cart line,
// in one transaction spanning both collections.
func (s *Store) Reset(ctx context.Context) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("resetting store", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM profile"); err != nil {
		return storageError("resetting profile", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM cart"); err != nil {
		return storageError("resetting cart", err)
	}
	if err := tx.Commit(); err != nil {
		return storageError("resetting store", err)
	}
	return nil
}

// handle returns the database handle, or the lifecycle error when the
// store is not open.
func (s *Store) handle() (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, types.ErrStoreClosed
	}
	if !s.opened {
		return nil, types.ErrStorageUnavailable
	}
	return s.db, nil
}

// storageError wraps a database failure in ErrStorage with call context.
func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", types.ErrStorage, op, err)
}
