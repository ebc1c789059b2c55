package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest carries the customer details for cash and push-payment
// checkouts.
type CheckoutRequest struct {
	Name            string `json:"name"`
	PhoneNumber     string `json:"phone_number"`
	Email           string `json:"email"`
	DeliveryAddress string `json:"delivery_address"`
}

// OrderLineResponse describes one order position.
type OrderLineResponse struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse describes a placed order.
type OrderResponse struct {
	ID              int64               `json:"id"`
	CustomerName    string              `json:"customer_name"`
	PhoneNumber     string              `json:"phone_number"`
	Email           string              `json:"email,omitempty"`
	DeliveryAddress string              `json:"delivery_address"`
	Status          string              `json:"status"`
	Lines           []OrderLineResponse `json:"lines"`
	Total           decimal.Decimal     `json:"total"`
	TotalItems      int                 `json:"total_items"`
	CreatedAt       time.Time           `json:"created_at"`
}

// PickupResponse is the pickup info shown on confirmations.
type PickupResponse struct {
	Location string `json:"location"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Days     string `json:"days"`
}

// TrackingResponse is the customer-facing order tracking view.
type TrackingResponse struct {
	Order  OrderResponse   `json:"order"`
	Pickup *PickupResponse `json:"pickup,omitempty"`
}

// UpdateOrderStatusRequest overwrites an order's fulfilment status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
