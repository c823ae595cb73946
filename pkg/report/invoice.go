package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"storefront.dev/shop/pkg/models"
)

// WriteInvoice renders an A4 invoice for order billed to user.
func WriteInvoice(w io.Writer, order *models.Order, user *models.UserSummary) error {
	return renderInvoice(order, user).Output(w)
}

func renderInvoice(order *models.Order, user *models.UserSummary) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", order.ID.Hex()), false)
	pdf.AddPage()
	// Core fonts are cp1252; user text arrives as UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "INVOICE", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Order: "+order.ID.Hex(), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+order.CreatedAt.UTC().Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("Status: "+string(order.CurrentStatus())), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, "Billed to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	if user != nil {
		pdf.CellFormat(0, 5, tr(user.Name), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 5, tr(user.Email), "", 1, "L", false, 0, "")
	}
	addr := order.ShippingAddress
	pdf.CellFormat(0, 5, tr(addr.Address), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s %s, %s", addr.City, addr.PostalCode, addr.Country)), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	widths := []float64{95, 20, 35, 40}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range []string{"Item", "Qty", "Price", "Subtotal"} {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(widths[i], 8, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range order.OrderItems {
		pdf.CellFormat(widths[0], 7, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", item.Qty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, money(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, money(item.Price*float64(item.Qty)), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	totals := []struct {
		label string
		value float64
	}{
		{"Items", order.ItemsPrice},
		{"Shipping", order.ShippingPrice},
		{"Tax", order.TaxPrice},
		{"Total", order.TotalPrice},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Helvetica", "B", 11)
		}
		pdf.CellFormat(150, 7, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, money(t.value), "", 1, "R", false, 0, "")
	}

	return pdf
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
