package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/test"
	"github.com/kahenya/duka/internal/usecase"
)

type paymentFixture struct {
	uc       *usecase.PaymentUseCase
	payments *test.PaymentRepositoryStub
	products *test.ProductRepositoryStub
	orders   *test.OrderRepositoryStub
	finance  *test.FinanceRepositoryStub
	sessions *test.SessionRepositoryStub
	gateway  *test.GatewayStub
	notifier *test.NotifierStub
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()
	products := test.NewProductRepositoryStub()
	orders := test.NewOrderRepositoryStub()
	orders.Products = products
	payments := test.NewPaymentRepositoryStub(orders)
	finance := test.NewFinanceRepositoryStub()
	sessions := test.NewSessionRepositoryStub()
	gateway := &test.GatewayStub{}
	notifier := &test.NotifierStub{}

	settings := usecase.NewSettingsUseCase(&test.SettingsRepositoryStub{})
	if err := settings.Warm(context.Background()); err != nil {
		t.Fatalf("warm settings: %v", err)
	}

	uc := usecase.NewPaymentUseCase(payments, products, finance, sessions, gateway, settings, notifier, discardLogger(), 10*time.Minute, 3)
	return &paymentFixture{
		uc:       uc,
		payments: payments,
		products: products,
		orders:   orders,
		finance:  finance,
		sessions: sessions,
		gateway:  gateway,
		notifier: notifier,
	}
}

func (f *paymentFixture) seedCart(t *testing.T, sessionID string, qty int) *model.Product {
	t.Helper()
	hoodie := seedHoodie(f.products, 10)
	cart := &model.Cart{Lines: []model.CartLine{{
		Key:       model.CartLineKey(hoodie.ID, "L"),
		ProductID: hoodie.ID,
		Name:      hoodie.Name,
		Size:      "L",
		Quantity:  qty,
		UnitPrice: hoodie.Price,
	}}}
	if err := f.sessions.SaveCart(context.Background(), sessionID, cart); err != nil {
		t.Fatalf("save cart: %v", err)
	}
	return hoodie
}

func TestInitiateRecordsAttemptAndSnapshot(t *testing.T) {
	f := newPaymentFixture(t)
	f.seedCart(t, "s1", 2)
	ctx := context.Background()

	id, err := f.uc.Initiate(ctx, "s1", validCustomer())
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	attempt, err := f.payments.GetByCheckoutRequestID(ctx, id)
	if err != nil {
		t.Fatalf("attempt not recorded: %v", err)
	}
	if attempt.Status != model.PaymentStatusPending {
		t.Errorf("expected pending attempt, got %q", attempt.Status)
	}
	if !attempt.Amount.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected amount 5000, got %s", attempt.Amount)
	}
	if attempt.PhoneNumber != "254712345678" {
		t.Errorf("expected normalized phone on attempt, got %q", attempt.PhoneNumber)
	}

	snapshot, err := f.sessions.GetSnapshot(ctx, id)
	if err != nil {
		t.Fatalf("snapshot not recorded: %v", err)
	}
	if snapshot.SessionID != "s1" || len(snapshot.Lines) != 1 {
		t.Errorf("unexpected snapshot %+v", snapshot)
	}

	pending, err := f.sessions.GetPendingPayment(ctx, "s1")
	if err != nil || pending != id {
		t.Errorf("expected pending marker %q, got %q (%v)", id, pending, err)
	}

	if len(f.gateway.Calls) != 1 || f.gateway.Calls[0].Phone != "254712345678" {
		t.Errorf("unexpected gateway calls %+v", f.gateway.Calls)
	}

	// Stock is only reserved at materialization, not initiation.
	for _, p := range f.products.Products {
		if p.StockQuantity != 10 {
			t.Errorf("stock must be untouched at initiation, got %d", p.StockQuantity)
		}
	}
}

func TestInitiateGatewayFailureLeavesNoTrace(t *testing.T) {
	f := newPaymentFixture(t)
	f.seedCart(t, "s1", 1)
	f.gateway.Err = domainErrors.ErrGatewayUnavailable
	ctx := context.Background()

	if _, err := f.uc.Initiate(ctx, "s1", validCustomer()); !errors.Is(err, domainErrors.ErrGatewayUnavailable) {
		t.Fatalf("expected gateway error, got %v", err)
	}

	if len(f.payments.Attempts) != 0 {
		t.Errorf("no attempt may be recorded on gateway failure")
	}
	if _, err := f.sessions.GetPendingPayment(ctx, "s1"); !errors.Is(err, domainErrors.ErrNoPendingPayment) {
		t.Errorf("no pending marker may be set, got %v", err)
	}
	if cart, _ := f.sessions.GetCart(ctx, "s1"); cart.Empty() {
		t.Errorf("cart must survive a failed initiation")
	}
}

func TestInitiateEmptyCart(t *testing.T) {
	f := newPaymentFixture(t)
	if _, err := f.uc.Initiate(context.Background(), "s1", validCustomer()); !errors.Is(err, domainErrors.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestHandleCallbackFinalizesOnce(t *testing.T) {
	f := newPaymentFixture(t)
	f.seedCart(t, "s1", 1)
	ctx := context.Background()

	id, err := f.uc.Initiate(ctx, "s1", validCustomer())
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	f.uc.HandleCallback(ctx, model.PaymentResult{
		CheckoutRequestID: id,
		Status:            model.PaymentStatusSuccess,
		ReceiptCode:       "NLJ7RT61SV",
	})

	attempt, _ := f.payments.GetByCheckoutRequestID(ctx, id)
	if attempt.Status != model.PaymentStatusSuccess || attempt.ReceiptCode != "NLJ7RT61SV" {
		t.Fatalf("unexpected attempt after callback: %+v", attempt)
	}

	// A late contradictory callback must not reopen or flip the attempt.
	f.uc.HandleCallback(ctx, model.PaymentResult{
		CheckoutRequestID: id,
		Status:            model.PaymentStatusFailed,
		Description:       "late duplicate",
	})
	attempt, _ = f.payments.GetByCheckoutRequestID(ctx, id)
	if attempt.Status != model.PaymentStatusSuccess {
		t.Errorf("terminal status must be immutable, got %q", attempt.Status)
	}
}

func TestHandleCallbackUnknownAttemptIsSwallowed(t *testing.T) {
	f := newPaymentFixture(t)
	// Must not panic or error out; the webhook is always acknowledged.
	f.uc.HandleCallback(context.Background(), model.PaymentResult{
		CheckoutRequestID: "ws_CO_unknown",
		Status:            model.PaymentStatusSuccess,
	})
}

func TestPollPendingAttempt(t *testing.T) {
	f := newPaymentFixture(t)
	f.seedCart(t, "s1", 1)
	ctx := context.Background()

	if _, err := f.uc.Initiate(ctx, "s1", validCustomer()); err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	status, err := f.uc.Poll(ctx, "s1")
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if status.Status != model.PaymentStatusPending || status.Order != nil {
		t.Errorf("unexpected poll status %+v", status)
	}
}

func TestPollWithoutPendingPayment(t *testing.T) {
	f := newPaymentFixture(t)
	if _, err := f.uc.Poll(context.Background(), "s1"); !errors.Is(err, domainErrors.ErrNoPendingPayment) {
		t.Fatalf("expected ErrNoPendingPayment, got %v", err)
	}
}

func TestPollSuccessMaterializesOrderOnce(t *testing.T) {
	f := newPaymentFixture(t)
	hoodie := f.seedCart(t, "s1", 2)
	ctx := context.Background()

	id, err := f.uc.Initiate(ctx, "s1", validCustomer())
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	f.uc.HandleCallback(ctx, model.PaymentResult{CheckoutRequestID: id, Status: model.PaymentStatusSuccess})

	status, err := f.uc.Poll(ctx, "s1")
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if status.Status != model.PaymentStatusSuccess || status.Order == nil {
		t.Fatalf("expected success with order, got %+v", status)
	}
	if f.products.Products[hoodie.ID].StockQuantity != 8 {
		t.Errorf("expected stock decremented to 8, got %d", f.products.Products[hoodie.ID].StockQuantity)
	}
	if cart, _ := f.sessions.GetCart(ctx, "s1"); !cart.Empty() {
		t.Errorf("cart must be cleared after successful purchase")
	}
	if _, err := f.sessions.GetPendingPayment(ctx, "s1"); !errors.Is(err, domainErrors.ErrNoPendingPayment) {
		t.Errorf("pending marker must be cleared, got %v", err)
	}
	if len(f.notifier.Confirmations) != 1 {
		t.Errorf("expected one confirmation, got %d", len(f.notifier.Confirmations))
	}

	// A second poll of the same attempt must not create another order.
	if err := f.sessions.SetPendingPayment(ctx, "s1", id); err != nil {
		t.Fatalf("restore pending: %v", err)
	}
	again, err := f.uc.Poll(ctx, "s1")
	if err != nil {
		t.Fatalf("second Poll: %v", err)
	}
	if again.Order == nil || again.Order.ID != status.Order.ID {
		t.Fatalf("expected the same order, got %+v", again.Order)
	}
	if len(f.orders.Orders) != 1 {
		t.Errorf("exactly one order may exist, got %d", len(f.orders.Orders))
	}
	if f.products.Products[hoodie.ID].StockQuantity != 8 {
		t.Errorf("stock must not be decremented twice, got %d", f.products.Products[hoodie.ID].StockQuantity)
	}
	if len(f.notifier.Confirmations) != 1 {
		t.Errorf("confirmation must be sent once, got %d", len(f.notifier.Confirmations))
	}
}

func TestPollCancelledClearsPendingKeepsCart(t *testing.T) {
	f := newPaymentFixture(t)
	f.seedCart(t, "s1", 1)
	ctx := context.Background()

	id, err := f.uc.Initiate(ctx, "s1", validCustomer())
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	f.uc.HandleCallback(ctx, model.PaymentResult{
		CheckoutRequestID: id,
		Status:            model.PaymentStatusCancelled,
		Description:       "Request cancelled by user",
	})

	status, err := f.uc.Poll(ctx, "s1")
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if status.Status != model.PaymentStatusCancelled {
		t.Errorf("expected cancelled, got %q", status.Status)
	}
	if cart, _ := f.sessions.GetCart(ctx, "s1"); cart.Empty() {
		t.Errorf("cart must survive a cancelled payment so the customer can retry")
	}
	if _, err := f.sessions.GetPendingPayment(ctx, "s1"); !errors.Is(err, domainErrors.ErrNoPendingPayment) {
		t.Errorf("pending marker must be cleared, got %v", err)
	}
	if len(f.orders.Orders) != 0 {
		t.Errorf("no order may be created for a cancelled payment")
	}
}

func TestPollExpiresStalePendingAttempt(t *testing.T) {
	f := newPaymentFixture(t)
	f.seedCart(t, "s1", 1)
	ctx := context.Background()

	id, err := f.uc.Initiate(ctx, "s1", validCustomer())
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}

	f.payments.Attempts[id].CreatedAt = time.Now().Add(-11 * time.Minute)

	status, err := f.uc.Poll(ctx, "s1")
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if status.Status != model.PaymentStatusFailed {
		t.Errorf("expected failed status for expired attempt, got %q", status.Status)
	}

	attempt, _ := f.payments.GetByCheckoutRequestID(ctx, id)
	if attempt.Status != model.PaymentStatusFailed {
		t.Errorf("attempt must be finalized as failed, got %q", attempt.Status)
	}
	if attempt.ResultDescription != "payment request expired" {
		t.Errorf("unexpected description %q", attempt.ResultDescription)
	}
}

func TestPollExpiryLosesToConcurrentSuccessCallback(t *testing.T) {
	f := newPaymentFixture(t)
	hoodie := f.seedCart(t, "s1", 1)
	ctx := context.Background()

	id, err := f.uc.Initiate(ctx, "s1", validCustomer())
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	f.payments.Attempts[id].CreatedAt = time.Now().Add(-11 * time.Minute)

	// The success callback settles the attempt just before the poll's
	// expiry write reaches storage.
	f.payments.FinalizeFn = func(ctx context.Context, result model.PaymentResult) error {
		f.payments.FinalizeFn = nil
		f.uc.HandleCallback(ctx, model.PaymentResult{
			CheckoutRequestID: id,
			Status:            model.PaymentStatusSuccess,
			ReceiptCode:       "NLJ7RT61SV",
		})
		return domainErrors.ErrPaymentFinalized
	}

	status, err := f.uc.Poll(ctx, "s1")
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if status.Status != model.PaymentStatusSuccess || status.Order == nil {
		t.Fatalf("expected settled success with order, got %+v", status)
	}
	if f.products.Products[hoodie.ID].StockQuantity != 9 {
		t.Errorf("expected stock decremented to 9, got %d", f.products.Products[hoodie.ID].StockQuantity)
	}
	if cart, _ := f.sessions.GetCart(ctx, "s1"); !cart.Empty() {
		t.Errorf("cart must be cleared after the settled purchase")
	}
	if len(f.notifier.Confirmations) != 1 {
		t.Errorf("expected one confirmation, got %d", len(f.notifier.Confirmations))
	}
}

func TestPollSuccessAfterSnapshotExpiryWithoutClaim(t *testing.T) {
	f := newPaymentFixture(t)
	f.seedCart(t, "s1", 1)
	ctx := context.Background()

	id, err := f.uc.Initiate(ctx, "s1", validCustomer())
	if err != nil {
		t.Fatalf("Initiate: %v", err)
	}
	f.uc.HandleCallback(ctx, model.PaymentResult{CheckoutRequestID: id, Status: model.PaymentStatusSuccess})

	// The snapshot expired before anyone polled and no order was ever made.
	if err := f.sessions.DeleteSnapshot(ctx, id); err != nil {
		t.Fatalf("delete snapshot: %v", err)
	}

	if _, err := f.uc.Poll(ctx, "s1"); !errors.Is(err, domainErrors.ErrSnapshotExpired) {
		t.Fatalf("expected ErrSnapshotExpired, got %v", err)
	}
}
