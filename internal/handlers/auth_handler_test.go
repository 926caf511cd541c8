package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/handlers"
	"github.com/kofi-annor/stayhub/internal/services"
)

func setCookies(t *testing.T) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	tm := auth.NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	handlers.SetAuthCookies(c, services.TokenPair{AccessToken: "a", RefreshToken: "r"}, tm)
	return w.Result().Cookies()
}

func TestSetAuthCookiesSecureInReleaseMode(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	cookies := setCookies(t)
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	for _, ck := range cookies {
		if !ck.Secure {
			t.Errorf("cookie %s not Secure in release mode", ck.Name)
		}
		if !ck.HttpOnly {
			t.Errorf("cookie %s not HTTP-only", ck.Name)
		}
	}
}

func TestSetAuthCookiesPlainOutsideRelease(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, ck := range setCookies(t) {
		if ck.Secure {
			t.Errorf("cookie %s Secure outside release mode", ck.Name)
		}
	}
}
