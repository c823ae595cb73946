package ai

import (
	"context"
	"time"

	"storefront.dev/shop/pkg/models"
)

type AIReportResponse struct {
	Status      string     `json:"status"`
	Data        ReportData `json:"data"`
	GeneratedAt time.Time  `json:"generated_at"`
	AIEnabled   bool       `json:"ai_enabled"`
}

type SalesData struct {
	Summary       *models.Summary       `json:"summary"`
	SalesOverTime []models.MonthlySales `json:"salesOverTime"`
}

type ReportData struct {
	RawData    SalesData `json:"raw_data"`
	AIInsights string    `json:"ai_insights,omitempty"`
	Summary    string    `json:"summary"`
	Error      string    `json:"error,omitempty"`
}

// GenerateSalesInsights wraps the dashboard figures in a report and, when the
// AI service is enabled, asks it for a written analysis. A failed completion
// is reported in Data.Error rather than returned.
func GenerateSalesInsights(ctx context.Context, summary *models.Summary, series []models.MonthlySales) (*AIReportResponse, error) {
	response := &AIReportResponse{
		Status:      "success",
		GeneratedAt: time.Now(),
		AIEnabled:   IsEnabled(),
		Data: ReportData{
			RawData: SalesData{Summary: summary, SalesOverTime: series},
			Summary: "Raw sales data (AI insights unavailable)",
		},
	}

	if !IsEnabled() {
		return response, nil
	}

	insights, err := generateCompletion(ctx, SalesReportSystemPrompt, formatSalesDataPrompt(summary, series))
	if err != nil {
		response.Data.Error = "AI analysis failed: " + err.Error()
		return response, nil
	}

	response.Data.AIInsights = insights
	response.Data.Summary = "AI-generated sales insights and recommendations"
	return response, nil
}
