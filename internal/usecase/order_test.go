package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
	"github.com/kahenya/duka/internal/test"
	"github.com/kahenya/duka/internal/usecase"
)

func newOrderFixture(t *testing.T) (*usecase.OrderUseCase, *test.OrderRepositoryStub, *test.NotifierStub) {
	t.Helper()
	orders := test.NewOrderRepositoryStub()
	notifier := &test.NotifierStub{}
	settings := usecase.NewSettingsUseCase(&test.SettingsRepositoryStub{})
	if err := settings.Warm(context.Background()); err != nil {
		t.Fatalf("warm settings: %v", err)
	}
	return usecase.NewOrderUseCase(orders, settings, notifier, discardLogger()), orders, notifier
}

func placeOrder(t *testing.T, orders *test.OrderRepositoryStub) *model.Order {
	t.Helper()
	order, err := orders.CreateFromCheckout(context.Background(), repository.CheckoutOrder{
		CustomerName:    "Atieno",
		PhoneNumber:     "254712345678",
		Email:           "atieno@example.com",
		DeliveryAddress: "Moi Avenue",
		Lines: []model.CartLine{{
			ProductID: 1, Name: "Classic Hoodie", Size: "L", Quantity: 1,
			UnitPrice: decimal.NewFromInt(2500),
		}},
	})
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestUpdateStatusNotifiesOnChange(t *testing.T) {
	uc, orders, notifier := newOrderFixture(t)
	order := placeOrder(t, orders)
	ctx := context.Background()

	updated, err := uc.UpdateStatus(ctx, order.ID, model.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.Status != model.OrderStatusProcessing {
		t.Errorf("expected processing, got %q", updated.Status)
	}
	if len(notifier.StatusChanges) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.StatusChanges))
	}
	change := notifier.StatusChanges[0]
	if change.Previous != model.OrderStatusPending || change.Current != model.OrderStatusProcessing {
		t.Errorf("unexpected change %+v", change)
	}
}

func TestUpdateStatusIdempotentNoNotification(t *testing.T) {
	uc, orders, notifier := newOrderFixture(t)
	order := placeOrder(t, orders)
	ctx := context.Background()

	if _, err := uc.UpdateStatus(ctx, order.ID, model.OrderStatusPending); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if len(notifier.StatusChanges) != 0 {
		t.Errorf("no notification expected for a no-op transition, got %d", len(notifier.StatusChanges))
	}
}

func TestUpdateStatusAllowsBackwardMove(t *testing.T) {
	uc, orders, _ := newOrderFixture(t)
	order := placeOrder(t, orders)
	ctx := context.Background()

	if _, err := uc.UpdateStatus(ctx, order.ID, model.OrderStatusDelivered); err != nil {
		t.Fatalf("forward move: %v", err)
	}
	updated, err := uc.UpdateStatus(ctx, order.ID, model.OrderStatusDispatched)
	if err != nil {
		t.Fatalf("backward move: %v", err)
	}
	if updated.Status != model.OrderStatusDispatched {
		t.Errorf("expected dispatched, got %q", updated.Status)
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	uc, orders, _ := newOrderFixture(t)
	order := placeOrder(t, orders)
	ctx := context.Background()

	if _, err := uc.UpdateStatus(ctx, order.ID, "shipped"); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Errorf("unknown status: got %v, want ErrInvalidStatus", err)
	}
	if _, err := uc.UpdateStatus(ctx, 999, model.OrderStatusProcessing); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Errorf("unknown order: got %v, want ErrNotFound", err)
	}
}

func TestTrackMatchesPhone(t *testing.T) {
	uc, orders, _ := newOrderFixture(t)
	order := placeOrder(t, orders)
	ctx := context.Background()

	info, err := uc.Track(ctx, order.ID, "0712345678")
	if err != nil {
		t.Fatalf("Track: %v", err)
	}
	if info.Order.ID != order.ID {
		t.Errorf("unexpected order %d", info.Order.ID)
	}
	if info.Pickup == nil {
		t.Errorf("expected pickup info from settings")
	}

	if _, err := uc.Track(ctx, order.ID, "0799999999"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Errorf("phone mismatch must read as not found, got %v", err)
	}
}
