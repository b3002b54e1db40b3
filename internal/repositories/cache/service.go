package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Service caches unique_id -> destination_url entries for the public
// scan endpoint. Entries never outlive the record's expiry, so a cache
// hit can be served without re-checking the database.
type Service struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func NewService(client *redis.Client, defaultTTL time.Duration) *Service {
	return &Service{client: client, defaultTTL: defaultTTL}
}

func scanKey(uniqueID string) string {
	return "scan:dest:" + uniqueID
}

// GetDestination returns the cached destination for a unique id.
func (s *Service) GetDestination(ctx context.Context, uniqueID string) (string, error) {
	val, err := s.client.Get(ctx, scanKey(uniqueID)).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetDestination caches a destination. The TTL is capped at the
// record's remaining life so an expired code never serves from cache.
func (s *Service) SetDestination(ctx context.Context, uniqueID, destination string, remaining time.Duration) error {
	ttl := s.defaultTTL
	if remaining > 0 && remaining < ttl {
		ttl = remaining
	}
	return s.client.Set(ctx, scanKey(uniqueID), destination, ttl).Err()
}

// InvalidateScan drops the cached destination for a unique id. Called
// on destination edits and deletes.
func (s *Service) InvalidateScan(ctx context.Context, uniqueID string) error {
	return s.client.Del(ctx, scanKey(uniqueID)).Err()
}

func (s *Service) Close() error {
	return s.client.Close()
}
