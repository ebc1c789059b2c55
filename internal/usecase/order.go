package usecase

import (
	"context"
	"log/slog"

	"github.com/kahenya/duka/internal/adapter/mailer"
	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// OrderUseCase covers order lookup, customer tracking and the admin
// fulfilment workflow.
type OrderUseCase struct {
	orders   repository.OrderRepository
	settings *SettingsUseCase
	notifier mailer.Notifier
	logger   *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, settings *SettingsUseCase, notifier mailer.Notifier, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, settings: settings, notifier: notifier, logger: logger}
}

// Get fetches an order with its lines.
func (u *OrderUseCase) Get(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// TrackingInfo is the customer-facing order view: the order plus the pickup
// details in effect right now.
type TrackingInfo struct {
	Order  *model.Order
	Pickup *model.PickupInfo
}

// Track returns the customer tracking view. The phone number must match the
// one on the order; a mismatch is reported as not found rather than
// revealing the order's existence.
func (u *OrderUseCase) Track(ctx context.Context, id int64, phone string) (*TrackingInfo, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.PhoneNumber != normalized {
		return nil, domainErrors.ErrNotFound
	}

	info := &TrackingInfo{Order: order}
	if settings := u.settings.Get(); settings != nil {
		pickup := settings.Pickup()
		info.Pickup = &pickup
	}
	return info, nil
}

// List returns recent orders, newest first.
func (u *OrderUseCase) List(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	return u.orders.List(ctx, limit)
}

// UpdateStatus moves an order to a new fulfilment status. Any transition
// between valid statuses is allowed, including backwards moves to correct
// mistakes. The customer is notified only when the status actually changed.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if !model.ValidOrderStatus(status) {
		return nil, domainErrors.ErrInvalidStatus
	}

	previous, err := u.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if previous != status {
		u.logger.Info("order status changed",
			slog.Int64("order_id", orderID),
			slog.String("from", string(previous)),
			slog.String("to", string(status)),
		)
		u.notifier.OrderStatusChanged(ctx, order, previous)
	}
	return order, nil
}
