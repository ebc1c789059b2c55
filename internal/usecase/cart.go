package usecase

import (
	"context"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// CartUseCase manages the per-visitor cart.
type CartUseCase struct {
	products repository.ProductRepository
	sessions repository.SessionRepository
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(products repository.ProductRepository, sessions repository.SessionRepository) *CartUseCase {
	return &CartUseCase{products: products, sessions: sessions}
}

// Get returns the session's cart; a session with no cart yields an empty one.
func (u *CartUseCase) Get(ctx context.Context, sessionID string) (*model.Cart, error) {
	return u.sessions.GetCart(ctx, sessionID)
}

// Add puts qty units of a product+size into the cart. An existing line for
// the same product+size is merged and keeps its originally captured price;
// the product's current price applies only to new lines.
func (u *CartUseCase) Add(ctx context.Context, sessionID string, productID int64, size string, qty int) (*model.Cart, error) {
	if qty <= 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	product, err := u.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	validSize := false
	for _, s := range product.Sizes() {
		if s == size {
			validSize = true
			break
		}
	}
	if !validSize {
		return nil, domainErrors.ErrInvalidProduct
	}

	cart, err := u.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	key := model.CartLineKey(productID, size)
	idx := -1
	for i, line := range cart.Lines {
		if line.Key == key {
			idx = i
			break
		}
	}

	want := qty
	if idx >= 0 {
		want += cart.Lines[idx].Quantity
	}
	if !product.CanFulfil(want) {
		return nil, domainErrors.ErrInsufficientStock
	}

	if idx >= 0 {
		cart.Lines[idx].Quantity = want
	} else {
		cart.Lines = append(cart.Lines, model.CartLine{
			Key:       key,
			ProductID: productID,
			Name:      product.Name,
			Size:      size,
			Quantity:  qty,
			UnitPrice: product.Price,
		})
	}

	if err := u.sessions.SaveCart(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of an existing line. Zero removes it.
func (u *CartUseCase) UpdateQuantity(ctx context.Context, sessionID, key string, qty int) (*model.Cart, error) {
	if qty < 0 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	cart, err := u.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, line := range cart.Lines {
		if line.Key == key {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domainErrors.ErrNotFound
	}

	if qty == 0 {
		cart.Lines = append(cart.Lines[:idx], cart.Lines[idx+1:]...)
	} else {
		product, err := u.products.GetByID(ctx, cart.Lines[idx].ProductID)
		if err != nil {
			return nil, err
		}
		if !product.CanFulfil(qty) {
			return nil, domainErrors.ErrInsufficientStock
		}
		cart.Lines[idx].Quantity = qty
	}

	if err := u.sessions.SaveCart(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Remove drops a line from the cart. Removing an absent line is a no-op.
func (u *CartUseCase) Remove(ctx context.Context, sessionID, key string) (*model.Cart, error) {
	cart, err := u.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.Key != key {
			kept = append(kept, line)
		}
	}
	cart.Lines = kept

	if err := u.sessions.SaveCart(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart.
func (u *CartUseCase) Clear(ctx context.Context, sessionID string) error {
	return u.sessions.ClearCart(ctx, sessionID)
}
