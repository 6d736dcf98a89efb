package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IRevocationStore defines the shared refresh-token denylist. Entries carry a
// TTL equal to the token's remaining lifetime, so the store cleans itself up
// and revocation survives restarts and spans instances.
type IRevocationStore interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// RevocationStore is the Redis-backed denylist implementation
type RevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a new RevocationStore
func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

func revocationKey(token string) string {
	return "revoked_token:" + token
}

// Revoke adds a token to the denylist for the given TTL
func (s *RevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already expired; nothing to deny
		return nil
	}

	if err := s.client.Set(ctx, revocationKey(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("error adding token to denylist: %w", err)
	}

	return nil
}

// IsRevoked checks whether a token is on the denylist
func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	count, err := s.client.Exists(ctx, revocationKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("error checking token denylist: %w", err)
	}

	return count > 0, nil
}
