package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore is the allow-list of live refresh tokens. A refresh token that
// is absent from the store is treated as revoked even if its signature still
// verifies, so logout and rotation take effect immediately.
type TokenStore struct {
	rdb *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

func refreshKey(jti string) string {
	return fmt.Sprintf("refresh:%s", jti)
}

func (ts *TokenStore) Save(ctx context.Context, jti, userID string, ttl time.Duration) error {
	return ts.rdb.Set(ctx, refreshKey(jti), userID, ttl).Err()
}

func (ts *TokenStore) Valid(ctx context.Context, jti, userID string) (bool, error) {
	v, err := ts.rdb.Get(ctx, refreshKey(jti)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v == userID, nil
}

func (ts *TokenStore) Revoke(ctx context.Context, jti string) error {
	return ts.rdb.Del(ctx, refreshKey(jti)).Err()
}
