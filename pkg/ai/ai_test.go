package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront.dev/shop/pkg/models"
)

func TestFormatSalesDataPrompt(t *testing.T) {
	summary := &models.Summary{TotalOrders: 4, TotalUsers: 3, TotalSales: 250}
	series := []models.MonthlySales{
		{Year: 2024, Month: 1, TotalSales: 100, Count: 1},
		{Year: 2024, Month: 2, TotalSales: 150, Count: 3},
	}

	prompt := formatSalesDataPrompt(summary, series)

	assert.Contains(t, prompt, "Total orders: 4")
	assert.Contains(t, prompt, "Average order value: $62.50")
	assert.Contains(t, prompt, "2024-01: $100.00 across 1 orders")
	assert.Contains(t, prompt, "2024-02: $150.00 across 3 orders")
}

func TestGenerateSalesInsightsDisabled(t *testing.T) {
	summary := &models.Summary{}

	report, err := GenerateSalesInsights(context.Background(), summary, nil)
	require.NoError(t, err)

	assert.False(t, report.AIEnabled)
	assert.Equal(t, "success", report.Status)
	assert.Same(t, summary, report.Data.RawData.Summary)
	assert.Empty(t, report.Data.AIInsights)
}
