package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kofi-annor/stayhub/internal/models"
)

const dashboardCacheKey = "dashboard:v1"

type Dashboard struct {
	TotalUsers       int64                 `json:"total_users"`
	TotalHotels      int64                 `json:"total_hotels"`
	TotalBookings    int64                 `json:"total_bookings"`
	TotalRevenue     int64                 `json:"total_revenue"`
	BookingsByStatus []models.StatusCount  `json:"bookings_by_status"`
	TopHotels        []models.HotelRevenue `json:"top_hotels"`
	RecentBookings   []*models.Booking     `json:"recent_bookings"`
	GeneratedAt      time.Time             `json:"generated_at"`
}

// DashboardCache is the read-through cache in front of the aggregation
// queries; redis in production, a fake in tests.
type DashboardCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

type AnalyticsService struct {
	repo     models.AnalyticsRepo
	cache    DashboardCache
	cacheTTL time.Duration
}

func NewAnalyticsService(repo models.AnalyticsRepo, cache DashboardCache, ttl time.Duration) *AnalyticsService {
	return &AnalyticsService{repo: repo, cache: cache, cacheTTL: ttl}
}

func (as *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var cached Dashboard
	if ok, _ := as.cache.Get(ctx, dashboardCacheKey, &cached); ok {
		return &cached, nil
	}

	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.TotalUsers, err = as.repo.CountUsers(gctx)
		return
	})
	g.Go(func() (err error) {
		d.TotalHotels, err = as.repo.CountHotels(gctx)
		return
	})
	g.Go(func() (err error) {
		d.TotalBookings, err = as.repo.CountBookings(gctx)
		return
	})
	g.Go(func() (err error) {
		d.TotalRevenue, err = as.repo.TotalRevenue(gctx)
		return
	})
	g.Go(func() (err error) {
		d.BookingsByStatus, err = as.repo.BookingsByStatus(gctx)
		return
	})
	g.Go(func() (err error) {
		d.TopHotels, err = as.repo.TopHotelsByRevenue(gctx, 5)
		return
	})
	g.Go(func() (err error) {
		d.RecentBookings, err = as.repo.RecentBookings(gctx, 10)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.GeneratedAt = time.Now()
	_ = as.cache.Set(ctx, dashboardCacheKey, d, as.cacheTTL)
	return &d, nil
}
