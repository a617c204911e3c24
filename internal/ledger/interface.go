package ledger

import (
	"context"
)

// Snapshot is one consistent view of the entire ledger. Version is an
// opaque monotonic stamp used for conditional replacement.
type Snapshot struct {
	Version uint64
	Records []Record
}

// Store holds the shared ledger as a single whole-state resource. There is
// no partial-write primitive: every mutation is a read-modify-write cycle
// over a full snapshot, guarded by the version stamp.
//
// ReadAll returns model.ErrStoreUnavailable (wrapped) on backend failure,
// which callers must keep distinct from a genuinely empty snapshot.
// ReplaceAll returns model.ErrVersionConflict when the given version is no
// longer current; callers retry via Mutate.
type Store interface {
	ReadAll(ctx context.Context) (*Snapshot, error)
	ReplaceAll(ctx context.Context, version uint64, records []Record) error
}
