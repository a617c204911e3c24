package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/hmori/dopabalance/internal/ledger"
	"github.com/hmori/dopabalance/internal/model"
)

// The whole ledger lives in a single row: the store contract is
// read-all/replace-all, and the version column makes the replace
// conditional.
const schema = `
CREATE TABLE IF NOT EXISTS ledger_state (
    id SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
    version BIGINT NOT NULL,
    records JSONB NOT NULL
);
`

// Store is a PostgreSQL-backed implementation of the ledger store
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL, verifies the connection and ensures the
// schema exists.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return New(db), nil
}

// New creates a Store over an existing database handle (for testing)
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

// Ensure Store implements the interface
var _ ledger.Store = (*Store)(nil)

func (s *Store) ReadAll(ctx context.Context) (*ledger.Snapshot, error) {
	var (
		version uint64
		data    []byte
	)
	err := s.db.QueryRowContext(
		ctx,
		`SELECT version, records FROM ledger_state WHERE id = 1`,
	).Scan(&version, &data)
	if errors.Is(err, sql.ErrNoRows) {
		// Never written yet: genuinely empty, not unavailable
		return &ledger.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	snap := &ledger.Snapshot{Version: version}
	if err := json.Unmarshal(data, &snap.Records); err != nil {
		return nil, fmt.Errorf("%w: corrupt record set: %v", model.ErrStoreUnavailable, err)
	}
	return snap, nil
}

func (s *Store) ReplaceAll(ctx context.Context, version uint64, records []ledger.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	var result sql.Result
	if version == 0 {
		// First write: the row may not exist yet. The guarded ON CONFLICT
		// update turns a concurrent first write into a version conflict
		// below.
		result, err = s.db.ExecContext(
			ctx,
			`INSERT INTO ledger_state (id, version, records) VALUES (1, 1, $1)
			 ON CONFLICT (id) DO UPDATE SET version = 1, records = $1
			 WHERE ledger_state.version = 0`,
			data,
		)
	} else {
		result, err = s.db.ExecContext(
			ctx,
			`UPDATE ledger_state SET version = version + 1, records = $1
			 WHERE id = 1 AND version = $2`,
			data, version,
		)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
	if affected == 0 {
		return model.ErrVersionConflict
	}
	return nil
}
