package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/pkg/models"
)

func sampleOrder() models.Order {
	return models.Order{
		ID:   bson.NewObjectID(),
		User: bson.NewObjectID(),
		OrderItems: []models.OrderItem{
			{Product: bson.NewObjectID(), Name: "Airpods", Price: 89.99, Qty: 2},
		},
		ShippingAddress: models.ShippingAddress{Address: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"},
		ItemsPrice:      179.98,
		TaxPrice:        27,
		TotalPrice:      206.98,
		Status:          models.StatusPaid,
		IsPaid:          true,
		CreatedAt:       time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestWriteOrdersCSV(t *testing.T) {
	order := sampleOrder()
	orders := []models.OrderWithUser{
		{Order: order, UserInfo: &models.UserSummary{Name: "John Doe", Email: "john@example.com"}},
		{Order: sampleOrder()},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, orders))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"ID", "User", "Email", "Date", "Total", "Paid", "Delivered"}, rows[0])
	assert.Equal(t, []string{order.ID.Hex(), "John Doe", "john@example.com", "Tue Mar 05 2024", "206.98", "Yes", "No"}, rows[1])
	assert.Equal(t, "N/A", rows[2][1])
}

func TestWriteInvoice(t *testing.T) {
	order := sampleOrder()

	var buf bytes.Buffer
	require.NoError(t, WriteInvoice(&buf, &order, &models.UserSummary{Name: "John Doe", Email: "john@example.com"}))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestWriteInvoice_NonASCII(t *testing.T) {
	order := sampleOrder()
	order.OrderItems[0].Name = "Café Crème"
	order.ShippingAddress.City = "Zürich"
	user := &models.UserSummary{Name: "José Müller", Email: "jose@example.com"}

	var buf bytes.Buffer
	require.NoError(t, WriteInvoice(&buf, &order, user))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))

	pdf := renderInvoice(&order, user)
	pdf.SetCompression(false)
	var raw bytes.Buffer
	require.NoError(t, pdf.Output(&raw))

	// Text is written in cp1252, not as raw UTF-8 bytes.
	assert.Contains(t, raw.String(), "Caf\xe9 Cr\xe8me")
	assert.Contains(t, raw.String(), "Jos\xe9 M\xfcller")
	assert.NotContains(t, raw.String(), "Café")
}
