package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront.dev/shop/internal/memstore"
	"storefront.dev/shop/pkg/ai"
	"storefront.dev/shop/pkg/models"
)

func TestAdminInsights(t *testing.T) {
	analytics := &memstore.Analytics{
		Totals: models.Summary{TotalOrders: 2, TotalUsers: 3, TotalSales: 150},
		Series: []models.MonthlySales{{Year: 2024, Month: 5, TotalSales: 150, Count: 2}},
	}
	svc := NewAdminService(analytics)

	var gotSeries []models.MonthlySales
	svc.insights = func(_ context.Context, summary *models.Summary, series []models.MonthlySales) (*ai.AIReportResponse, error) {
		gotSeries = series
		return &ai.AIReportResponse{Status: "success", Data: ai.ReportData{RawData: ai.SalesData{Summary: summary, SalesOverTime: series}}}, nil
	}

	report, err := svc.Insights(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), report.Data.RawData.Summary.TotalOrders)
	assert.Equal(t, analytics.Series, gotSeries)
}

func TestAdminSummary_NoOrders(t *testing.T) {
	svc := NewAdminService(&memstore.Analytics{})

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalSales)
}
