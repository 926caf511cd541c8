package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/config"
	"github.com/kofi-annor/stayhub/internal/container"
	"github.com/kofi-annor/stayhub/internal/handlers"
	"github.com/kofi-annor/stayhub/internal/middleware"
	"github.com/kofi-annor/stayhub/internal/observability"
)

// SetupRoutes configures the router against the dependency container.
func SetupRoutes(cfg *config.Config, c *container.Container, registry *prometheus.Registry) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.RateLimit(20, 40))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(observability.MetricsHandler(registry)))

	api := r.Group("/api")

	api.GET("/health", func(gc *gin.Context) {
		gc.JSON(http.StatusOK, gin.H{
			"status":  "OK",
			"service": "stayhub-api",
		})
	})

	// public routes
	api.POST("/users/register", handlers.Register(c.UserService, c.TokenManager))
	api.POST("/auth/login", handlers.Login(c.UserService, c.TokenManager))
	api.POST("/auth/refresh-token", handlers.RefreshToken(c.UserService, c.TokenManager))
	api.POST("/auth/logout", handlers.Logout(c.UserService))

	api.GET("/hotels/search", handlers.SearchHotels(c.HotelService))
	api.GET("/hotels", handlers.ListFeaturedHotels(c.HotelService))
	api.GET("/hotels/:hotelId", handlers.GetHotel(c.HotelService))
	api.GET("/reviews/:hotelId", handlers.ListHotelReviews(c.ReviewService))

	protected := api.Group("/")
	protected.Use(middleware.Auth(c.TokenManager, c.UserService, c.Logger))
	{
		protected.GET("/auth/validate-token", handlers.ValidateToken(c.UserService))
		protected.GET("/users/me", handlers.Me(c.UserService))

		protected.POST("/hotels/:hotelId/bookings/payment-intent", handlers.CreatePaymentIntent(c.BookingService))
		protected.POST("/hotels/:hotelId/bookings", handlers.ConfirmBooking(c.BookingService))
		protected.GET("/my-bookings", handlers.ListMyBookings(c.BookingService))
		protected.PATCH("/bookings/:id/status", handlers.UpdateBookingStatus(c.BookingService))
		protected.DELETE("/bookings/:id", middleware.RequireRoles(auth.RoleAdmin), handlers.DeleteBooking(c.BookingService))

		protected.POST("/favorites/:hotelId", handlers.AddFavorite(c.FavoriteService))
		protected.DELETE("/favorites/:hotelId", handlers.RemoveFavorite(c.FavoriteService))
		protected.GET("/favorites", handlers.ListFavorites(c.FavoriteService))

		protected.POST("/reviews/:hotelId", handlers.CreateReview(c.ReviewService))
	}

	myHotels := protected.Group("/my-hotels")
	myHotels.Use(middleware.RequireRoles(auth.RoleHotelOwner, auth.RoleAdmin))
	{
		myHotels.POST("", handlers.CreateHotel(c.HotelService))
		myHotels.GET("", handlers.ListMyHotels(c.HotelService))
		myHotels.PUT("/:hotelId", handlers.UpdateHotel(c.HotelService))
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRoles(auth.RoleAdmin))
	{
		admin.GET("/dashboard", handlers.Dashboard(c.AnalyticsService))
	}

	return r
}
