package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/storage"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kapparot"

// Store implements storage.KeyValueStore on Redis string keys.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

var _ storage.KeyValueStore = (*Store)(nil)

// New connects to addr and verifies the connection.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewWithClient(client, ttl), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func recordKey(sessionID, key string) string {
	return keyPrefix + ":" + sessionID + ":" + key
}

func (s *Store) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	if sessionID == "" {
		return "", false, storage.ErrNoSession
	}
	val, err := s.client.Get(ctx, recordKey(sessionID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("failed to get session record from redis: %w", err)
	}
	return val, true, nil
}

// Set writes the record. A zero ttl keeps it until deleted.
func (s *Store) Set(ctx context.Context, sessionID, key, value string) error {
	if sessionID == "" {
		return storage.ErrNoSession
	}
	if err := s.client.Set(ctx, recordKey(sessionID, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session record in redis: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID, key string) error {
	if sessionID == "" {
		return storage.ErrNoSession
	}
	if err := s.client.Del(ctx, recordKey(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("failed to delete session record from redis: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
