package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest describes the admin create/update payload.
type ProductRequest struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	Category       string           `json:"category"`
	AvailableSizes string           `json:"available_sizes"`
	StockType      string           `json:"stock_type"`
	StockQuantity  int              `json:"stock_quantity"`
	PurchaseCost   *decimal.Decimal `json:"purchase_cost,omitempty"`
}

// ProductResponse describes a catalog item.
type ProductResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	Sizes         []string        `json:"sizes"`
	StockType     string          `json:"stock_type"`
	StockQuantity int             `json:"stock_quantity"`
	InStock       bool            `json:"in_stock"`
	CreatedAt     time.Time       `json:"created_at"`
}
