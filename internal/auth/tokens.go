package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kofi-annor/stayhub/internal/apperr"
)

// ErrTokenExpired distinguishes an expired access token (refreshable) from a
// malformed one (not refreshable, but both clear the session).
var ErrTokenExpired = errors.New("token expired")

type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type RefreshClaims struct {
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the access/refresh token pair. The two
// token types use separate secrets so a leaked access secret cannot mint
// refresh tokens.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (tm *TokenManager) AccessTTL() time.Duration  { return tm.accessTTL }
func (tm *TokenManager) RefreshTTL() time.Duration { return tm.refreshTTL }

func (tm *TokenManager) SignAccess(userID, role string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.accessSecret)
}

// SignRefresh returns the signed refresh token and its jti, which is the key
// used by the redis allow-list.
func (tm *TokenManager) SignRefresh(userID string) (string, string, error) {
	now := time.Now()
	jti := uuid.NewString()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.refreshTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.refreshSecret)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

func (tm *TokenManager) VerifyAccess(tokenStr string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return tm.accessSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, apperr.Wrap(apperr.Unauthorized, "invalid access token", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, apperr.New(apperr.Unauthorized, "invalid access token")
	}
	return claims, nil
}

func (tm *TokenManager) VerifyRefresh(tokenStr string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return tm.refreshSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, "invalid refresh token", err)
	}
	if !token.Valid || claims.Subject == "" || claims.ID == "" {
		return nil, apperr.New(apperr.Unauthorized, "invalid refresh token")
	}
	return claims, nil
}
