package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kofi-annor/stayhub/internal/helpers"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/services"
)

// Dashboard serves the admin overview aggregates.
func Dashboard(a *services.AnalyticsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := a.Dashboard(c.Request.Context())
		if err != nil {
			helpers.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(d, ""))
	}
}
