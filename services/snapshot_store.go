package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"puisje/game"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	snapshotKeyPrefix = "session:"
	lastNamesKey      = "session:lastplayers"
)

// SnapshotStore keeps in-progress session snapshots in Redis as JSON
// values with a TTL, plus the remembered last-roster names in a key that
// never expires. It implements game.PersistenceGateway.
type SnapshotStore struct {
	redis  *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewSnapshotStore(client *redis.Client, ttl time.Duration, logger zerolog.Logger) *SnapshotStore {
	return &SnapshotStore{
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *SnapshotStore) SaveSnapshot(ctx context.Context, code string, snap game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := s.redis.Set(ctx, snapshotKeyPrefix+code, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot in redis: %w", err)
	}

	s.logger.Debug().Str("code", code).Int("round", snap.CurrentRound).
		Bool("round_started", snap.RoundStarted).Msg("stored session snapshot")
	return nil
}

func (s *SnapshotStore) LoadSnapshot(ctx context.Context, code string) (game.Snapshot, bool, error) {
	data, err := s.redis.Get(ctx, snapshotKeyPrefix+code).Result()
	if err == redis.Nil {
		return game.Snapshot{}, false, nil
	}
	if err != nil {
		return game.Snapshot{}, false, fmt.Errorf("failed to read snapshot from redis: %w", err)
	}

	var snap game.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return game.Snapshot{}, false, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, true, nil
}

func (s *SnapshotStore) ClearSnapshot(ctx context.Context, code string) error {
	if err := s.redis.Del(ctx, snapshotKeyPrefix+code).Err(); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

// SaveLastNames stores the roster names of the most recent game so the
// next session can prefill them. Unlike snapshots this slot has no TTL
// and survives ClearSnapshot.
func (s *SnapshotStore) SaveLastNames(ctx context.Context, names []string) error {
	data, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("failed to marshal last names: %w", err)
	}
	if err := s.redis.Set(ctx, lastNamesKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store last names: %w", err)
	}
	return nil
}

func (s *SnapshotStore) LastNames(ctx context.Context) ([]string, error) {
	data, err := s.redis.Get(ctx, lastNamesKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last names: %w", err)
	}

	var names []string
	if err := json.Unmarshal([]byte(data), &names); err != nil {
		return nil, fmt.Errorf("failed to unmarshal last names: %w", err)
	}
	return names, nil
}
