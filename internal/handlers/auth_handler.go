package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/apperr"
	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/helpers"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/services"
)

const (
	AccessCookie  = "auth_token"
	RefreshCookie = "refresh_token"
)

// SetAuthCookies writes the token pair as HTTP-only cookies, Secure in
// release mode. The middleware reuses it when it silently refreshes an
// expired access token.
func SetAuthCookies(c *gin.Context, tokens services.TokenPair, tm *auth.TokenManager) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookie, tokens.AccessToken, int(tm.AccessTTL().Seconds()), "/", "", secure, true)
	c.SetCookie(RefreshCookie, tokens.RefreshToken, int(tm.RefreshTTL().Seconds()), "/", "", secure, true)
}

func ClearAuthCookies(c *gin.Context) {
	secure := gin.Mode() == gin.ReleaseMode
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(AccessCookie, "", -1, "/", "", secure, true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", secure, true)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Login(u *services.UserService, tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("email and password are required"))
			return
		}

		res, err := u.Login(c.Request.Context(), helpers.StringTrim(req.Email), req.Password)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		SetAuthCookies(c, res.Tokens, tm)
		c.JSON(http.StatusOK, models.SuccessResponse(res.User, "logged in successfully"))
	}
}

// RefreshToken rotates the pair presented in the refresh cookie.
func RefreshToken(u *services.UserService, tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		refresh, err := c.Cookie(RefreshCookie)
		if err != nil || refresh == "" {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("refresh token missing"))
			return
		}

		res, err := u.Refresh(c.Request.Context(), refresh)
		if err != nil {
			ClearAuthCookies(c)
			helpers.RespondError(c, err)
			return
		}

		SetAuthCookies(c, res.Tokens, tm)
		c.JSON(http.StatusOK, models.SuccessResponse(res.User, "token refreshed"))
	}
}

func Logout(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if refresh, err := c.Cookie(RefreshCookie); err == nil && refresh != "" {
			u.Logout(c.Request.Context(), refresh)
		}
		ClearAuthCookies(c)
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "logged out successfully"))
	}
}

// ValidateToken returns the user behind the current session; the auth
// middleware has already verified (or refreshed) the cookies by the time
// this runs.
func ValidateToken(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		user, err := u.GetUser(c.Request.Context(), ac.UserID)
		if err != nil {
			if apperr.KindOf(err) == apperr.NotFound {
				ClearAuthCookies(c)
				c.JSON(http.StatusUnauthorized, models.ErrorResponse("account no longer exists"))
				return
			}
			helpers.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}
