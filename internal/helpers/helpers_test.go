package helpers_test

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/apperr"
	"github.com/kofi-annor/stayhub/internal/helpers"
)

func respond(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	helpers.RespondError(c, err)
	return w
}

func TestRespondErrorHidesDetailInReleaseMode(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	wrapped := apperr.Wrap(apperr.Internal, "internal server error",
		errors.New("mongo topology: connection(10.0.0.5:27017) internal detail"))
	w := respond(t, wrapped)

	if w.Code != 500 {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Errorf("release-mode body leaks internals: %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "internal server error") {
		t.Errorf("taxonomy message missing: %s", w.Body.String())
	}
}

func TestRespondErrorIncludesDetailOutsideRelease(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := respond(t, apperr.Wrap(apperr.NotFound, "hotel not found", errors.New("no documents in result")))

	if w.Code != 404 {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "no documents in result") {
		t.Errorf("debug detail missing outside release mode: %s", w.Body.String())
	}
}

func TestIsPasswordStrong(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Sup3rSecret", true},
		{"short1A", false},
		{"alllowercase1", false},
		{"ALLUPPERCASE1", false},
		{"NoDigitsHere", false},
	}
	for _, tc := range cases {
		if got := helpers.IsPasswordStrong(tc.password); got != tc.want {
			t.Errorf("IsPasswordStrong(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}
