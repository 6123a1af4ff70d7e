package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked_refresh:"

// RevocationRepository is the persisted denylist of refresh tokens. Entries
// are keyed by the token's JTI and expire with the token itself.
type RevocationRepository interface {
	// Revoke adds the JTI to the set. Returns false if it was already present.
	Revoke(ctx context.Context, jti string, ttl time.Duration) (bool, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type redisRevocationRepository struct {
	client *redis.Client
}

// NewRevocationRepository returns a Redis-backed implementation.
func NewRevocationRepository(client *redis.Client) RevocationRepository {
	return &redisRevocationRepository{client: client}
}

// Revoke uses SETNX so revoking is atomic: concurrent logouts of the same
// token resolve to exactly one winner, and any later refresh observes the key.
func (r *redisRevocationRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, revokedKeyPrefix+jti, 1, ttl).Result()
}

func (r *redisRevocationRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
