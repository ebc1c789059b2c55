package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory enumerates the catalog categories the store sells.
type ProductCategory string

const (
	CategoryHoodies    ProductCategory = "hoodies"
	CategorySweatpants ProductCategory = "sweatpants"
	CategorySocks      ProductCategory = "socks"
	CategoryShorts     ProductCategory = "shorts"
	CategoryShirts     ProductCategory = "shirts"
)

// Categories lists all valid product categories.
func Categories() []ProductCategory {
	return []ProductCategory{
		CategoryHoodies,
		CategorySweatpants,
		CategorySocks,
		CategoryShorts,
		CategoryShirts,
	}
}

// ValidCategory reports whether c names a known category.
func ValidCategory(c ProductCategory) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// StockType describes how inventory for a product is sourced.
type StockType string

const (
	// StockReady is inventory physically held; finite, decremented on sale.
	StockReady StockType = "ready"
	// StockWarehouse is inventory sourced on demand after sale; treated as infinite.
	StockWarehouse StockType = "warehouse"
)

// Product describes a catalog item.
type Product struct {
	ID             int64
	Name           string
	Description    string
	Price          decimal.Decimal
	Category       ProductCategory
	AvailableSizes string
	StockType      StockType
	StockQuantity  int
	PurchaseCost   *decimal.Decimal
	CreatedAt      time.Time
}

// Sizes splits the comma-separated size list into trimmed entries.
func (p Product) Sizes() []string {
	parts := strings.Split(p.AvailableSizes, ",")
	sizes := make([]string, 0, len(parts))
	for _, s := range parts {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sizes = append(sizes, trimmed)
		}
	}
	return sizes
}

// InStock reports whether the product can be ordered at all.
// Warehouse items are always orderable.
func (p Product) InStock() bool {
	return p.StockType == StockWarehouse || p.StockQuantity > 0
}

// CanFulfil reports whether qty units can be sold right now.
func (p Product) CanFulfil(qty int) bool {
	if p.StockType == StockWarehouse {
		return true
	}
	return qty <= p.StockQuantity
}
