package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes the fulfilment lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDispatched OrderStatus = "dispatched"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// OrderStatuses lists the ordered set of fulfilment statuses.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusDispatched,
		OrderStatusDelivered,
	}
}

// ValidOrderStatus reports whether s is a member of the status set.
func ValidOrderStatus(s OrderStatus) bool {
	for _, known := range OrderStatuses() {
		if s == known {
			return true
		}
	}
	return false
}

// Order is a durable record of a placed purchase.
type Order struct {
	ID              int64
	CustomerName    string
	PhoneNumber     string
	Email           string
	DeliveryAddress string
	Status          OrderStatus
	CreatedAt       time.Time
	Lines           []OrderLine
}

// Total sums line subtotals. Derived, never stored.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// TotalItems counts units across all lines.
func (o Order) TotalItems() int {
	n := 0
	for _, line := range o.Lines {
		n += line.Quantity
	}
	return n
}

// OrderLine captures one product position of an order at its sale price.
type OrderLine struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Name      string
	Size      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal is quantity times the price captured at sale time.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
