package services_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/services"
)

type fakeAnalyticsRepo struct {
	calls atomic.Int64
}

func (f *fakeAnalyticsRepo) CountUsers(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	return 12, nil
}

func (f *fakeAnalyticsRepo) CountHotels(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	return 4, nil
}

func (f *fakeAnalyticsRepo) CountBookings(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	return 30, nil
}

func (f *fakeAnalyticsRepo) TotalRevenue(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	return 9000, nil
}

func (f *fakeAnalyticsRepo) BookingsByStatus(ctx context.Context) ([]models.StatusCount, error) {
	f.calls.Add(1)
	return []models.StatusCount{{Status: models.BookingStatusConfirmed, Count: 30}}, nil
}

func (f *fakeAnalyticsRepo) TopHotelsByRevenue(ctx context.Context, limit int) ([]models.HotelRevenue, error) {
	f.calls.Add(1)
	return nil, nil
}

func (f *fakeAnalyticsRepo) RecentBookings(ctx context.Context, limit int) ([]*models.Booking, error) {
	f.calls.Add(1)
	return nil, nil
}

type memoryCache struct {
	stored *services.Dashboard
}

func (m *memoryCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if m.stored == nil {
		return false, nil
	}
	*dst.(*services.Dashboard) = *m.stored
	return true, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	d := v.(services.Dashboard)
	m.stored = &d
	return nil
}

func TestDashboardAggregates(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := services.NewAnalyticsService(repo, &memoryCache{}, time.Minute)

	d, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.TotalUsers != 12 || d.TotalHotels != 4 || d.TotalBookings != 30 || d.TotalRevenue != 9000 {
		t.Errorf("unexpected totals: %+v", d)
	}
	if repo.calls.Load() != 7 {
		t.Errorf("repo queried %d times, want 7", repo.calls.Load())
	}
}

func TestDashboardServedFromCache(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	svc := services.NewAnalyticsService(repo, &memoryCache{}, time.Minute)

	if _, err := svc.Dashboard(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	before := repo.calls.Load()

	if _, err := svc.Dashboard(context.Background()); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if repo.calls.Load() != before {
		t.Error("cached dashboard still hit the repository")
	}
}
