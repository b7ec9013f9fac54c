package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "auth:revoked:"

// RevocationList is a Redis-backed denylist of refresh token ids.
// Entries carry a TTL equal to the token's remaining life, so the
// list never outgrows the set of tokens that are still verifiable.
type RevocationList struct {
	client *redis.Client
}

// NewRevocationList constructs a RevocationList.
func NewRevocationList(client *redis.Client) *RevocationList {
	return &RevocationList{client: client}
}

// Revoke denylists a refresh token id until its natural expiry.
// Already-expired tokens are ignored.
func (l *RevocationList) Revoke(ctx context.Context, id string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return l.client.Set(ctx, revocationKeyPrefix+id, "1", ttl).Err()
}

// IsRevoked reports whether a refresh token id has been denylisted.
func (l *RevocationList) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := l.client.Exists(ctx, revocationKeyPrefix+id).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
