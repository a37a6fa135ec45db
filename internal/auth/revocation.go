package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "revoked_token:"

// RevocationList invalidates JWTs before their natural expiry, backed by
// Redis so a logout survives process restarts. Without a Redis client the
// list degrades to accepting every structurally valid token.
type RevocationList struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRevocationList builds the list; client may be nil.
func NewRevocationList(client *redis.Client, logger *zap.Logger) *RevocationList {
	return &RevocationList{client: client, logger: logger}
}

// Revoke marks the token id as invalid until its expiry.
func (l *RevocationList) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) {
	if l == nil || l.client == nil || tokenID == "" {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}
	if err := l.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		l.logger.Warn("failed to record token revocation", zap.Error(err))
	}
}

// IsRevoked reports whether the token id has been revoked. Redis errors are
// treated as not revoked and logged; losing the denylist must not lock every
// caller out.
func (l *RevocationList) IsRevoked(ctx context.Context, tokenID string) bool {
	if l == nil || l.client == nil || tokenID == "" {
		return false
	}
	n, err := l.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		l.logger.Warn("revocation lookup failed", zap.Error(err))
		return false
	}
	return n > 0
}
