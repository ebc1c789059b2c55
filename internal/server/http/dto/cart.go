package dto

import "github.com/shopspring/decimal"

// AddToCartRequest describes the add-line payload.
type AddToCartRequest struct {
	ProductID int64  `json:"product_id"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartLineRequest changes a line's quantity; zero removes the line.
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse describes one cart position.
type CartLineResponse struct {
	Key       string          `json:"key"`
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CartResponse describes the visitor's cart.
type CartResponse struct {
	Lines []CartLineResponse `json:"lines"`
	Total decimal.Decimal    `json:"total"`
}
