package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records revoked tokens until their natural expiry. Keys are
// derived from the token's SHA-256 so raw tokens never land in Redis, and
// each entry's TTL is aligned to the token's remaining lifetime so the list
// cleans itself up.
type TokenDenylist struct {
	client *redis.Client
}

func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// Revoke marks a token as revoked for the given remaining lifetime. Tokens
// already past expiry need no entry.
func (d *TokenDenylist) Revoke(ctx context.Context, token string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.key(token), "1", remaining).Err()
}

// IsRevoked reports whether the token has been revoked before its expiry.
func (d *TokenDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *TokenDenylist) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "revoked:" + hex.EncodeToString(sum[:])
}
