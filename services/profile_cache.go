package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"notesapp/model"

	"github.com/redis/go-redis/v9"
)

// ProfileCache keeps account snapshots in Redis for /get-user. Accounts are
// never modified after creation, so an entry cannot go stale; the TTL only
// bounds memory.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache connects to redisURL and checks the connection
func NewProfileCache(redisURL string, ttl time.Duration) (*ProfileCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewProfileCacheWithClient(client, ttl), nil
}

func NewProfileCacheWithClient(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

func profileKey(accountID string) string {
	return "profile:" + accountID
}

// Get returns the cached snapshot, or nil on a miss
func (pc *ProfileCache) Get(ctx context.Context, accountID string) (*model.Snapshot, error) {
	if accountID == "" {
		return nil, errors.New("accountID cannot be empty")
	}

	data, err := pc.client.Get(ctx, profileKey(accountID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile from cache: %w", err)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &snapshot, nil
}

// Set stores the snapshot under the account id
func (pc *ProfileCache) Set(ctx context.Context, snapshot model.Snapshot) error {
	if snapshot.ID == "" {
		return errors.New("cannot cache profile without id")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := pc.client.Set(ctx, profileKey(snapshot.ID), data, pc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}
	return nil
}

// Ping reports whether Redis is reachable
func (pc *ProfileCache) Ping(ctx context.Context) error {
	return pc.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (pc *ProfileCache) Close() error {
	return pc.client.Close()
}
