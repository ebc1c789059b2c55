package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kahenya/duka/internal/domain/model"
)

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Category model.ProductCategory
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ProductRepository describes persistence operations for catalog items.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id int64) error
	// LowReadyStock returns ready-stock products at or below threshold.
	LowReadyStock(ctx context.Context, threshold int) ([]model.Product, error)
}
