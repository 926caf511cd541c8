package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/helpers"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/services"
)

// Register creates an account and signs the new user in straight away.
func Register(u *services.UserService, tm *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		req.Email = helpers.StringTrim(req.Email)
		req.FirstName = helpers.StringTrim(req.FirstName)
		req.LastName = helpers.StringTrim(req.LastName)

		res, err := u.Register(c.Request.Context(), &req)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}

		SetAuthCookies(c, res.Tokens, tm)
		c.JSON(http.StatusCreated, models.SuccessResponse(res.User, "account created successfully"))
	}
}

// Me returns the authenticated user's profile.
func Me(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, ok := auth.FromGin(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse("not authenticated"))
			return
		}

		user, err := u.GetUser(c.Request.Context(), ac.UserID)
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(user, ""))
	}
}
