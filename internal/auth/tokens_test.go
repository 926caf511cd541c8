package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestManager(accessTTL time.Duration) *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", accessTTL, 24*time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := newTestManager(15 * time.Minute)

	token, err := tm.SignAccess("user-123", RoleHotelOwner)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := tm.VerifyAccess(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-123" {
		t.Errorf("subject = %q, want user-123", claims.Subject)
	}
	if claims.Role != RoleHotelOwner {
		t.Errorf("role = %q, want %q", claims.Role, RoleHotelOwner)
	}
}

func TestExpiredAccessTokenReportsExpiry(t *testing.T) {
	tm := newTestManager(-1 * time.Minute)

	token, err := tm.SignAccess("user-123", RoleUser)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = tm.VerifyAccess(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAccessTokenRejectedByRefreshVerifier(t *testing.T) {
	tm := newTestManager(15 * time.Minute)

	// The two token types use different secrets, so an access token must
	// never pass refresh verification.
	token, err := tm.SignAccess("user-123", RoleUser)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := tm.VerifyRefresh(token); err == nil {
		t.Fatal("access token accepted as refresh token")
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tm := newTestManager(15 * time.Minute)

	token, jti, err := tm.SignRefresh("user-9")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if jti == "" {
		t.Fatal("empty jti")
	}

	claims, err := tm.VerifyRefresh(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-9" || claims.ID != jti {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestTokenStoreAllowList(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewTokenStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	if err := store.Save(ctx, "jti-1", "user-1", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	ok, err := store.Valid(ctx, "jti-1", "user-1")
	if err != nil || !ok {
		t.Fatalf("expected valid token, ok=%v err=%v", ok, err)
	}

	// Wrong owner is invalid even though the jti exists.
	ok, _ = store.Valid(ctx, "jti-1", "user-2")
	if ok {
		t.Fatal("token valid for wrong user")
	}

	if err := store.Revoke(ctx, "jti-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	ok, _ = store.Valid(ctx, "jti-1", "user-1")
	if ok {
		t.Fatal("revoked token still valid")
	}

	// Unknown jti is invalid, not an error.
	ok, err = store.Valid(ctx, "missing", "user-1")
	if err != nil || ok {
		t.Fatalf("unknown jti: ok=%v err=%v", ok, err)
	}
}
