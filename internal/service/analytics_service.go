package service

import (
	"context"
	"time"

	"github.com/noah-isme/hostel-api/internal/access"
	"github.com/noah-isme/hostel-api/internal/models"
)

// AnalyticsRepository describes the aggregate queries behind stats and analytics.
type AnalyticsRepository interface {
	Stats(ctx context.Context, f access.Filter) (*models.HostelStats, error)
	StudentCountByBlock(ctx context.Context) ([]models.BlockCount, error)
	MonthlyPayments(ctx context.Context, since time.Time) ([]models.MonthlyPayment, error)
	ComplaintSummary(ctx context.Context) ([]models.StatusCount, error)
	LeaveTrends(ctx context.Context, since time.Time) ([]models.LeaveTrend, error)
}

// AnalyticsService serves block statistics and the admin dashboard with cache integration.
type AnalyticsService struct {
	base
	repo  AnalyticsRepository
	stats *CacheService
	now   func() time.Time
}

// NewAnalyticsService constructs an analytics service. cache may be nil.
func NewAnalyticsService(repo AnalyticsRepository, cache *CacheService, support Support) *AnalyticsService {
	return &AnalyticsService{base: newBase(support), repo: repo, stats: cache, now: time.Now}
}

// Stats returns open work counts for p's block, or the whole hostel for admins.
// The boolean reports whether the result came from cache.
func (s *AnalyticsService) Stats(ctx context.Context, p *models.Principal) (*models.HostelStats, bool, error) {
	d, err := s.authorize(p, access.ResourceStats, access.OpRead)
	if err != nil {
		return nil, false, err
	}

	return remember(ctx, s.stats, statsKey(d.Filter), func(ctx context.Context) (*models.HostelStats, error) {
		stats, err := s.repo.Stats(ctx, d.Filter)
		if err != nil {
			return nil, storeError(err, "failed to compute stats")
		}
		return stats, nil
	})
}

// Analytics returns the admin dashboard: occupancy per block, twelve months of payments,
// complaint status counts and six months of leave trends.
func (s *AnalyticsService) Analytics(ctx context.Context, p *models.Principal) (*models.HostelAnalytics, bool, error) {
	if _, err := s.authorize(p, access.ResourceAnalytics, access.OpRead); err != nil {
		return nil, false, err
	}

	return remember(ctx, s.stats, analyticsCacheKey, s.loadAnalytics)
}

func (s *AnalyticsService) loadAnalytics(ctx context.Context) (*models.HostelAnalytics, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	result := &models.HostelAnalytics{GeneratedAt: now}
	var err error
	if result.StudentCountByBlock, err = s.repo.StudentCountByBlock(ctx); err != nil {
		return nil, storeError(err, "failed to load occupancy")
	}
	if result.MonthlyPayments, err = s.repo.MonthlyPayments(ctx, monthStart.AddDate(0, -11, 0)); err != nil {
		return nil, storeError(err, "failed to load payments")
	}
	if result.ComplaintSummary, err = s.repo.ComplaintSummary(ctx); err != nil {
		return nil, storeError(err, "failed to load complaints")
	}
	if result.LeaveTrends, err = s.repo.LeaveTrends(ctx, monthStart.AddDate(0, -5, 0)); err != nil {
		return nil, storeError(err, "failed to load leave trends")
	}
	return result, nil
}
