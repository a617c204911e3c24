package memory

import (
	"context"
	"sync"

	"github.com/hmori/dopabalance/internal/ledger"
	"github.com/hmori/dopabalance/internal/model"
)

// Store is an in-memory implementation of the ledger store
type Store struct {
	mu      sync.RWMutex
	version uint64
	records []ledger.Record

	// failReads/failWrites simulate an unavailable backend in tests
	failReads  bool
	failWrites bool
}

// New creates a new in-memory ledger store
func New() *Store {
	return &Store{}
}

// Ensure Store implements the interface
var _ ledger.Store = (*Store)(nil)

func (s *Store) ReadAll(ctx context.Context) (*ledger.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failReads {
		return nil, model.ErrStoreUnavailable
	}
	records := make([]ledger.Record, len(s.records))
	copy(records, s.records)
	return &ledger.Snapshot{Version: s.version, Records: records}, nil
}

func (s *Store) ReplaceAll(ctx context.Context, version uint64, records []ledger.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return model.ErrStoreUnavailable
	}
	if version != s.version {
		return model.ErrVersionConflict
	}
	s.records = make([]ledger.Record, len(records))
	copy(s.records, records)
	s.version++
	return nil
}

// SetUnavailable toggles simulated backend failure for reads and writes
func (s *Store) SetUnavailable(reads, writes bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReads = reads
	s.failWrites = writes
}
