package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardResponse backs the admin landing page.
type DashboardResponse struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalOrders       int             `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
	TotalProducts     int             `json:"total_products"`
}

// SalesSummaryResponse aggregates sales over a reporting period.
type SalesSummaryResponse struct {
	Period            string          `json:"period"`
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalOrders       int             `json:"total_orders"`
	TotalItems        int             `json:"total_items"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// SalesBucketResponse is one bucket of a daily or monthly series.
type SalesBucketResponse struct {
	Bucket     string          `json:"bucket"`
	TotalSales decimal.Decimal `json:"total_sales"`
	OrderCount int             `json:"order_count"`
}

// ProductStatsResponse is one row of the top-products report.
type ProductStatsResponse struct {
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	LastSoldAt   *time.Time      `json:"last_sold_at,omitempty"`
}
