package container

import (
	"log/slog"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/cache"
	"github.com/kofi-annor/stayhub/internal/config"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/payments"
	"github.com/kofi-annor/stayhub/internal/services"
)

const dashboardTTL = 5 * time.Minute

// Container holds all application dependencies.
type Container struct {
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary

	MongoDBClient *mongo.Client
	RedisClient   *redis.Client

	TokenManager *auth.TokenManager

	UserService      *services.UserService
	HotelService     *services.HotelService
	BookingService   *services.BookingService
	ReviewService    *services.ReviewService
	FavoriteService  *services.FavoriteService
	AnalyticsService *services.AnalyticsService
}

// NewContainer wires the repositories and services together.
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	mongoClient *mongo.Client,
	redisClient *redis.Client,
) *Container {
	repo := models.MongodbNewRepo(mongoClient, cfg.MongoDBName)

	tokenManager := auth.NewTokenManager(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)
	tokenStore := auth.NewTokenStore(redisClient)
	provider := payments.NewStripeProvider(cfg.StripeSecretKey)

	return &Container{
		Logger:        logger,
		Cloudinary:    cld,
		MongoDBClient: mongoClient,
		RedisClient:   redisClient,
		TokenManager:  tokenManager,

		UserService:      services.NewUserService(repo, tokenManager, tokenStore),
		HotelService:     services.NewHotelService(repo, cld),
		BookingService:   services.NewBookingService(repo, repo, provider),
		ReviewService:    services.NewReviewService(repo, repo, repo),
		FavoriteService:  services.NewFavoriteService(repo, repo),
		AnalyticsService: services.NewAnalyticsService(repo, cache.New(redisClient), dashboardTTL),
	}
}
