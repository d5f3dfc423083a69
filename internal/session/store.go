// Package session is the single source of truth for which refresh token is
// currently live per user, plus the deny-list of revoked access tokens.
// Both live in Redis with per-key expiry, so stale entries need no cleanup.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	refreshKeyPrefix   = "refresh:"
	blacklistKeyPrefix = "blacklist:"
)

var (
	// ErrNotFound means the key is absent or expired.
	ErrNotFound = errors.New("session entry not found")
	// ErrCacheUnavailable wraps transport failures; callers must map it to a
	// 5xx response, never to an authentication failure.
	ErrCacheUnavailable = errors.New("session cache unavailable")
)

type Store struct {
	redis   *redis.Client
	timeout time.Duration
}

func NewStore(client *redis.Client, timeout time.Duration) *Store {
	return &Store{redis: client, timeout: timeout}
}

// SaveRefreshToken overwrites the live refresh token for the user. Last
// write wins; at most one token is live per user at any time.
func (s *Store) SaveRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.redis.Set(ctx, refreshKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// RefreshToken returns the live refresh token for the user, or ErrNotFound.
func (s *Store) RefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	val, err := s.redis.Get(ctx, refreshKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return val, nil
}

// DeleteRefreshToken drops the live refresh token, ending the session.
func (s *Store) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.redis.Del(ctx, refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// RevokeAccessToken deny-lists an access token for its remaining lifetime.
func (s *Store) RevokeAccessToken(ctx context.Context, token string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.redis.Set(ctx, blacklistKeyPrefix+token, "1", remaining).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return nil
}

// IsAccessTokenRevoked reports whether the token is on the deny-list.
func (s *Store) IsAccessTokenRevoked(ctx context.Context, token string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.redis.Get(ctx, blacklistKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrCacheUnavailable, err)
	}
	return true, nil
}

func refreshKey(userID uuid.UUID) string {
	return refreshKeyPrefix + userID.String()
}
