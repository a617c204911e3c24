package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hmori/dopabalance/internal/ledger"
	"github.com/hmori/dopabalance/internal/model"
)

// Store is a Redis-backed implementation of the ledger store. The whole
// record set lives in one JSON blob alongside a version counter; WATCH on
// the version key turns ReplaceAll into a conditional replace.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis ledger store
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	return &Store{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ ledger.Store = (*Store)(nil)

func (s *Store) ReadAll(ctx context.Context) (*ledger.Snapshot, error) {
	values, err := s.client.MGet(ctx, versionKey(), recordsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}

	snap := &ledger.Snapshot{}

	if raw, ok := values[0].(string); ok {
		version, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: corrupt version stamp %q", model.ErrStoreUnavailable, raw)
		}
		snap.Version = version
	}

	if raw, ok := values[1].(string); ok {
		if err := json.Unmarshal([]byte(raw), &snap.Records); err != nil {
			return nil, fmt.Errorf("%w: corrupt record set: %v", model.ErrStoreUnavailable, err)
		}
	}

	return snap, nil
}

func (s *Store) ReplaceAll(ctx context.Context, version uint64, records []ledger.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	txn := func(tx *redis.Tx) error {
		current := uint64(0)
		raw, err := tx.Get(ctx, versionKey()).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			current, err = strconv.ParseUint(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("%w: corrupt version stamp %q", model.ErrStoreUnavailable, raw)
			}
		}

		if current != version {
			return model.ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, recordsKey(), data, 0)
			pipe.Set(ctx, versionKey(), strconv.FormatUint(version+1, 10), 0)
			return nil
		})
		return err
	}

	err = s.client.Watch(ctx, txn, versionKey())
	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr):
		// The version key changed between WATCH and EXEC
		return model.ErrVersionConflict
	case errors.Is(err, model.ErrVersionConflict), errors.Is(err, model.ErrStoreUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %v", model.ErrStoreUnavailable, err)
	}
}
