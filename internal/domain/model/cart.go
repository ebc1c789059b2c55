package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CartLine is one visitor cart position. Lines are matched by product+size;
// the unit price is captured when the line is first added and decoupled from
// the product's current price.
type CartLine struct {
	Key       string          `json:"key"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CartLineKey builds the merge key for a product+size pair.
func CartLineKey(productID int64, size string) string {
	return fmt.Sprintf("%d_%s", productID, size)
}

// Subtotal is quantity times the captured unit price.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the transient per-visitor cart.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Total sums line subtotals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Empty reports whether the cart holds no lines.
func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// CheckoutSnapshot bridges payment initiation to payment completion: the
// customer details and cart captured when a push payment was requested,
// stored durably (with an expiry) under the payment's request identifier so
// a restart does not lose the in-flight checkout.
type CheckoutSnapshot struct {
	CustomerName    string          `json:"customer_name"`
	PhoneNumber     string          `json:"phone_number"`
	Email           string          `json:"email"`
	DeliveryAddress string          `json:"delivery_address"`
	Lines           []CartLine      `json:"lines"`
	Total           decimal.Decimal `json:"total"`
	SessionID       string          `json:"session_id"`
}
