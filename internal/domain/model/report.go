package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRecord is the per-order reporting row written as an explicit step of
// order materialization.
type SalesRecord struct {
	ID             int64
	OrderID        int64
	TotalItems     int
	TotalAmount    decimal.Decimal
	ProfitEstimate decimal.Decimal
	SaleDate       time.Time
}

// ProductStats accumulates lifetime sales figures per product.
type ProductStats struct {
	ProductID    int64
	ProductName  string
	TotalSold    int
	TotalRevenue decimal.Decimal
	LastSoldAt   *time.Time
}

// SalesSummary aggregates sales records over a reporting period.
type SalesSummary struct {
	Period            string
	TotalSales        decimal.Decimal
	TotalOrders       int
	TotalItems        int
	AverageOrderValue decimal.Decimal
}

// SalesBucket is one time bucket of a daily or monthly sales series.
type SalesBucket struct {
	Bucket     string
	TotalSales decimal.Decimal
	OrderCount int
}

// DashboardStats backs the admin landing page.
type DashboardStats struct {
	TotalRevenue      decimal.Decimal
	TotalOrders       int
	AverageOrderValue decimal.Decimal
	TotalProducts     int
}

// EmailStatus records the outcome of a notification send.
type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// EmailLog is an audit row for every outbound notification.
type EmailLog struct {
	ID        int64
	Recipient string
	Subject   string
	Status    EmailStatus
	SentAt    time.Time
}
