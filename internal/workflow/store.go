package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hermes/internal/metrics"
	"hermes/pkg/errors"
)

const recentRunsKey = "workflow:runs:recent"

// maxRecentRuns caps the recent-runs index length.
const maxRecentRuns = 100

// RunStore keeps run records in Redis with a TTL, plus an index of the
// most recent run IDs.
type RunStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRunStore creates a run store. A non-positive TTL keeps records for
// a week.
func NewRunStore(client *redis.Client, ttl time.Duration) *RunStore {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &RunStore{client: client, ttl: ttl}
}

// Save stores a run record and pushes its ID onto the recent index.
func (s *RunStore) Save(ctx context.Context, record *RunRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal run record: id=%s", record.ID)
	}

	key := s.key(record.ID)
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, s.ttl)
	pipe.LPush(ctx, recentRunsKey, record.ID)
	pipe.LTrim(ctx, recentRunsKey, 0, maxRecentRuns-1)

	if _, err := pipe.Exec(ctx); err != nil {
		metrics.StoreOperations.WithLabelValues("redis", "save", "error").Inc()
		return errors.Wrapf(err, "failed to save run record to redis: id=%s", record.ID)
	}

	metrics.StoreOperations.WithLabelValues("redis", "save", "success").Inc()
	return nil
}

// Get retrieves a run record by ID.
func (s *RunStore) Get(ctx context.Context, id string) (*RunRecord, error) {
	data, err := s.client.Get(ctx, s.key(id)).Result()
	if err == redis.Nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "run record not found: id=%s", id)
	}
	if err != nil {
		metrics.StoreOperations.WithLabelValues("redis", "get", "error").Inc()
		return nil, errors.Wrapf(err, "failed to get run record from redis: id=%s", id)
	}

	var record RunRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal run record: id=%s", id)
	}

	metrics.StoreOperations.WithLabelValues("redis", "get", "success").Inc()
	return &record, nil
}

// RecentIDs returns up to limit most recent run IDs, newest first.
func (s *RunStore) RecentIDs(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 || limit > maxRecentRuns {
		limit = maxRecentRuns
	}

	ids, err := s.client.LRange(ctx, recentRunsKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recent run ids")
	}

	return ids, nil
}

// Client exposes the underlying Redis client for health checks.
func (s *RunStore) Client() *redis.Client {
	return s.client
}

func (s *RunStore) key(id string) string {
	return fmt.Sprintf("workflow:run:%s", id)
}
