package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// CatalogUseCase serves the public catalog and the admin product operations.
type CatalogUseCase struct {
	products repository.ProductRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(products repository.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products}
}

// List returns catalog items matching the filter. An unknown category in the
// filter returns ErrNotFound rather than an empty listing.
func (u *CatalogUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if filter.Category != "" && !model.ValidCategory(filter.Category) {
		return nil, domainErrors.ErrNotFound
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.products.List(ctx, filter)
}

// Get fetches a single product by identifier.
func (u *CatalogUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

func validateProduct(p *model.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domainErrors.ErrInvalidProduct
	}
	if !model.ValidCategory(p.Category) {
		return domainErrors.ErrInvalidProduct
	}
	if !p.Price.IsPositive() {
		return domainErrors.ErrInvalidAmount
	}
	if p.StockType != model.StockReady && p.StockType != model.StockWarehouse {
		return domainErrors.ErrInvalidProduct
	}
	if p.StockQuantity < 0 {
		return domainErrors.ErrInvalidQuantity
	}
	if len(p.Sizes()) == 0 {
		return domainErrors.ErrInvalidProduct
	}
	return nil
}

// Create adds a product to the catalog.
func (u *CatalogUseCase) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	return u.products.Create(ctx, p)
}

// Update overwrites an existing product.
func (u *CatalogUseCase) Update(ctx context.Context, p *model.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return u.products.Update(ctx, p)
}

// Delete removes a product from the catalog.
func (u *CatalogUseCase) Delete(ctx context.Context, id int64) error {
	return u.products.Delete(ctx, id)
}
