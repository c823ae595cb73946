package services

import (
	"context"

	"storefront.dev/shop/pkg/ai"
	"storefront.dev/shop/pkg/models"
)

// InsightsFunc turns the dashboard figures into a report.
type InsightsFunc func(ctx context.Context, summary *models.Summary, series []models.MonthlySales) (*ai.AIReportResponse, error)

type AdminService struct {
	analytics AnalyticsRepository
	insights  InsightsFunc
}

func NewAdminService(analytics AnalyticsRepository) *AdminService {
	return &AdminService{analytics: analytics, insights: ai.GenerateSalesInsights}
}

func (s *AdminService) Summary(ctx context.Context) (*models.Summary, error) {
	return s.analytics.Summary(ctx)
}

func (s *AdminService) SalesOverTime(ctx context.Context) ([]models.MonthlySales, error) {
	return s.analytics.SalesOverTime(ctx)
}

func (s *AdminService) Insights(ctx context.Context) (*ai.AIReportResponse, error) {
	summary, err := s.analytics.Summary(ctx)
	if err != nil {
		return nil, err
	}
	series, err := s.analytics.SalesOverTime(ctx)
	if err != nil {
		return nil, err
	}
	return s.insights(ctx, summary, series)
}
