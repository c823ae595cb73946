package models

// Summary is the admin dashboard headline.
type Summary struct {
	TotalOrders int64   `json:"totalOrders"`
	TotalUsers  int64   `json:"totalUsers"`
	TotalSales  float64 `json:"totalSales"`
}

// MonthlySales is one (year, month) bucket of orders.
type MonthlySales struct {
	Year       int     `json:"year" bson:"year"`
	Month      int     `json:"month" bson:"month"`
	TotalSales float64 `json:"totalSales" bson:"totalSales"`
	Count      int     `json:"count" bson:"count"`
}
