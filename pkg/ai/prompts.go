package ai

import (
	"fmt"
	"strings"

	"storefront.dev/shop/pkg/models"
)

const SalesReportSystemPrompt = `You are a professional business analyst specializing in e-commerce sales data analysis.
Generate concise, actionable insights from the store's order figures. Focus on:
- Revenue and order volume trends month over month
- Average order value and what moves it
- Specific recommendations for the next month
Keep responses to 3 paragraphs maximum.`

func formatSalesDataPrompt(summary *models.Summary, series []models.MonthlySales) string {
	var b strings.Builder

	b.WriteString("Store summary:\n")
	if summary != nil {
		fmt.Fprintf(&b, "- Total orders: %d\n", summary.TotalOrders)
		fmt.Fprintf(&b, "- Total users: %d\n", summary.TotalUsers)
		fmt.Fprintf(&b, "- Total sales: $%.2f\n", summary.TotalSales)
		if summary.TotalOrders > 0 {
			fmt.Fprintf(&b, "- Average order value: $%.2f\n", summary.TotalSales/float64(summary.TotalOrders))
		}
	}

	b.WriteString("\nMonthly sales:\n")
	if len(series) == 0 {
		b.WriteString("- no orders yet\n")
	}
	for _, m := range series {
		fmt.Fprintf(&b, "- %04d-%02d: $%.2f across %d orders\n", m.Year, m.Month, m.TotalSales, m.Count)
	}

	b.WriteString("\nPlease analyze this data and provide business insights.")
	return b.String()
}
