package repository

import (
	"context"

	"github.com/kahenya/duka/internal/domain/model"
)

// CheckoutOrder is the input to order materialization: customer details plus
// the cart lines being purchased at their captured prices.
type CheckoutOrder struct {
	CustomerName    string
	PhoneNumber     string
	Email           string
	DeliveryAddress string
	Lines           []model.CartLine
}

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// CreateFromCheckout materializes an order in a single transaction:
	// inserts the order and its lines, decrements ready stock with a guarded
	// conditional update, writes the sales record and product stats. Returns
	// ErrInsufficientStock without mutating anything when a ready-stock line
	// cannot be fulfilled.
	CreateFromCheckout(ctx context.Context, checkout CheckoutOrder) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, limit int) ([]model.Order, error)
	// UpdateStatus overwrites the order status unconditionally and reports
	// the previous status so callers can decide whether to notify.
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (model.OrderStatus, error)
}
