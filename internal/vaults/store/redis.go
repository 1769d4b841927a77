package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
)

const (
	// Key prefix for a user's vault record list: vault:records:{user_id}
	recordListPrefix = "vault:records:"
)

// RedisStore keeps each user's vault records in a redis list. RPUSH/LRANGE
// give atomic append and a consistent full read, so a concurrent list and
// create never observe a half-written record.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) GetAll(ctx context.Context, userID string) ([]Record, error) {
	raw, err := s.client.LRange(ctx, s.listKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	out := make([]Record, 0, len(raw))
	for _, r := range raw {
		out = append(out, Record(r))
	}
	return out, nil
}

func (s *RedisStore) Append(ctx context.Context, userID string, rec Record) error {
	if err := s.client.RPush(ctx, s.listKey(userID), []byte(rec)).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) listKey(userID string) string {
	return recordListPrefix + userID
}
