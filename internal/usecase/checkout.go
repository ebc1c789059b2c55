package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/kahenya/duka/internal/adapter/mailer"
	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// CustomerInfo is the customer detail form submitted at checkout.
type CustomerInfo struct {
	Name            string
	PhoneNumber     string
	Email           string
	DeliveryAddress string
}

func (c *CustomerInfo) normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.DeliveryAddress = strings.TrimSpace(c.DeliveryAddress)
	if c.Name == "" || c.DeliveryAddress == "" {
		return domainErrors.ErrInvalidCheckout
	}

	phone, err := NormalizePhone(c.PhoneNumber)
	if err != nil {
		return err
	}
	c.PhoneNumber = phone
	return nil
}

// CheckoutUseCase places cash-on-pickup orders directly from the cart.
type CheckoutUseCase struct {
	orders    repository.OrderRepository
	products  repository.ProductRepository
	finance   repository.FinanceRepository
	sessions  repository.SessionRepository
	settings  *SettingsUseCase
	notifier  mailer.Notifier
	logger    *slog.Logger
	threshold int
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	finance repository.FinanceRepository,
	sessions repository.SessionRepository,
	settings *SettingsUseCase,
	notifier mailer.Notifier,
	logger *slog.Logger,
	threshold int,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		orders:    orders,
		products:  products,
		finance:   finance,
		sessions:  sessions,
		settings:  settings,
		notifier:  notifier,
		logger:    logger,
		threshold: threshold,
	}
}

// PlaceCashOrder materializes an order for the session's cart with cash
// settlement on pickup. The cart is cleared only after the order commits.
func (u *CheckoutUseCase) PlaceCashOrder(ctx context.Context, sessionID string, customer CustomerInfo) (*model.Order, error) {
	if err := customer.normalize(); err != nil {
		return nil, err
	}

	cart, err := u.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.Empty() {
		return nil, domainErrors.ErrEmptyCart
	}

	order, err := u.orders.CreateFromCheckout(ctx, repository.CheckoutOrder{
		CustomerName:    customer.Name,
		PhoneNumber:     customer.PhoneNumber,
		Email:           customer.Email,
		DeliveryAddress: customer.DeliveryAddress,
		Lines:           cart.Lines,
	})
	if err != nil {
		return nil, err
	}

	if err := u.sessions.ClearCart(ctx, sessionID); err != nil {
		u.logger.Error("clear cart after checkout", slog.String("session", sessionID), slog.Any("error", err))
	}

	u.notifier.OrderConfirmation(ctx, order, u.settings.Get())
	syncRestockAlerts(ctx, u.products, u.finance, u.threshold, u.logger)

	return order, nil
}
