package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:state:"

// Store persists snapshots as JSON blobs in Redis, one key per slot.
// Suitable when the state service runs replicated or needs snapshots to
// survive the host.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a Redis-backed snapshot store. A zero ttl keeps snapshots
// until explicitly deleted.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Load reads the slot into out. A missing key or undecodable payload
// reports (false, nil); the caller falls back to defaults.
func (s *Store) Load(ctx context.Context, slot string, out any) (bool, error) {
	data, err := s.client.Get(ctx, keyPrefix+slot).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("redis get slot %s: %w", slot, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("discarding corrupt snapshot",
			slog.String("slot", slot),
			slog.String("error", err.Error()),
		)
		return false, nil
	}

	return true, nil
}

// Save writes v as the slot's snapshot with the configured TTL.
func (s *Store) Save(ctx context.Context, slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal slot %s: %w", slot, err)
	}

	if err := s.client.Set(ctx, keyPrefix+slot, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set slot %s: %w", slot, err)
	}

	return nil
}

// Delete removes the slot key.
func (s *Store) Delete(ctx context.Context, slot string) error {
	if err := s.client.Del(ctx, keyPrefix+slot).Err(); err != nil {
		return fmt.Errorf("redis del slot %s: %w", slot, err)
	}
	return nil
}
