package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/hmori/dopabalance/internal/dependencies/random"
	"github.com/hmori/dopabalance/internal/model"
)

const (
	// maxMutateAttempts bounds optimistic-concurrency retries
	maxMutateAttempts = 5
	// baseBackoff is the per-attempt backoff unit; actual waits are
	// attempt*baseBackoff plus jitter in [0, baseBackoff)
	baseBackoff = 10 * time.Millisecond
)

// MutateFunc transforms a snapshot's records into the full replacement set
type MutateFunc func(records []Record) ([]Record, error)

// Mutate runs a read-modify-write cycle against the store with bounded
// optimistic-concurrency retries. Two concurrent mutations, even on
// disjoint identities, can race on the whole-snapshot store; a stale write
// is rejected by the version check and retried with jittered backoff.
// After exhaustion the conflict error surfaces to the caller.
func Mutate(ctx context.Context, store Store, rnd random.Random, fn MutateFunc) error {
	var lastErr error
	for attempt := 0; attempt < maxMutateAttempts; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt)*baseBackoff + time.Duration(rnd.Intn(int(baseBackoff)))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}

		snap, err := store.ReadAll(ctx)
		if err != nil {
			return err
		}

		next, err := fn(snap.Records)
		if err != nil {
			return err
		}

		err = store.ReplaceAll(ctx, snap.Version, next)
		if err == nil {
			return nil
		}
		if !errors.Is(err, model.ErrVersionConflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}
