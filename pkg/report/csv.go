// Package report renders orders for export: a CSV listing for admins and a
// PDF invoice for a single order.
package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"storefront.dev/shop/pkg/models"
)

var csvHeader = []string{"ID", "User", "Email", "Date", "Total", "Paid", "Delivered"}

// WriteOrdersCSV writes one row per order. Orders whose user no longer exists
// show N/A in the user columns.
func WriteOrdersCSV(w io.Writer, orders []models.OrderWithUser) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, o := range orders {
		name, email := "N/A", "N/A"
		if o.UserInfo != nil {
			name, email = o.UserInfo.Name, o.UserInfo.Email
		}
		row := []string{
			o.ID.Hex(),
			name,
			email,
			o.CreatedAt.UTC().Format("Mon Jan 02 2006"),
			fmt.Sprintf("%.2f", o.TotalPrice),
			yesNo(o.IsPaid),
			yesNo(o.IsDelivered),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
