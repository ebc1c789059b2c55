package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kahenya/duka/internal/adapter/daraja"
	"github.com/kahenya/duka/internal/adapter/mailer"
	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// PaymentUseCase drives the push-payment lifecycle: initiation, webhook
// reconciliation and status polling with order materialization on success.
type PaymentUseCase struct {
	payments  repository.PaymentRepository
	products  repository.ProductRepository
	finance   repository.FinanceRepository
	sessions  repository.SessionRepository
	gateway   daraja.Client
	settings  *SettingsUseCase
	notifier  mailer.Notifier
	logger    *slog.Logger
	expiry    time.Duration
	threshold int
	now       func() time.Time
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	payments repository.PaymentRepository,
	products repository.ProductRepository,
	finance repository.FinanceRepository,
	sessions repository.SessionRepository,
	gateway daraja.Client,
	settings *SettingsUseCase,
	notifier mailer.Notifier,
	logger *slog.Logger,
	expiry time.Duration,
	threshold int,
) *PaymentUseCase {
	return &PaymentUseCase{
		payments:  payments,
		products:  products,
		finance:   finance,
		sessions:  sessions,
		gateway:   gateway,
		settings:  settings,
		notifier:  notifier,
		logger:    logger,
		expiry:    expiry,
		threshold: threshold,
		now:       time.Now,
	}
}

// Initiate requests a push payment for the session's cart. On success it
// records the pending attempt, snapshots the checkout under the returned
// request identifier and correlates the session to the attempt. A gateway
// failure leaves no trace: nothing is recorded and the cart is untouched.
func (u *PaymentUseCase) Initiate(ctx context.Context, sessionID string, customer CustomerInfo) (string, error) {
	if err := customer.normalize(); err != nil {
		return "", err
	}

	cart, err := u.sessions.GetCart(ctx, sessionID)
	if err != nil {
		return "", err
	}
	if cart.Empty() {
		return "", domainErrors.ErrEmptyCart
	}

	total := cart.Total()
	if !total.IsPositive() {
		return "", domainErrors.ErrInvalidAmount
	}

	checkoutRequestID, err := u.gateway.RequestPush(ctx, customer.PhoneNumber, total, sessionID)
	if err != nil {
		return "", err
	}

	if _, err := u.payments.Create(ctx, &model.PaymentAttempt{
		CheckoutRequestID: checkoutRequestID,
		PhoneNumber:       customer.PhoneNumber,
		Amount:            total,
		Status:            model.PaymentStatusPending,
		SessionID:         sessionID,
	}); err != nil {
		return "", err
	}

	snapshot := &model.CheckoutSnapshot{
		CustomerName:    customer.Name,
		PhoneNumber:     customer.PhoneNumber,
		Email:           customer.Email,
		DeliveryAddress: customer.DeliveryAddress,
		Lines:           cart.Lines,
		Total:           total,
		SessionID:       sessionID,
	}
	if err := u.sessions.SaveSnapshot(ctx, checkoutRequestID, snapshot); err != nil {
		return "", err
	}
	if err := u.sessions.SetPendingPayment(ctx, sessionID, checkoutRequestID); err != nil {
		return "", err
	}

	u.logger.Info("payment initiated",
		slog.String("checkout_request_id", checkoutRequestID),
		slog.String("amount", total.String()),
	)
	return checkoutRequestID, nil
}

// HandleCallback applies the provider's reconciliation result. Unknown
// identifiers and already-settled attempts are logged and swallowed; the
// webhook is always acknowledged.
func (u *PaymentUseCase) HandleCallback(ctx context.Context, result model.PaymentResult) {
	err := u.payments.Finalize(ctx, result)
	switch {
	case err == nil:
		u.logger.Info("payment reconciled",
			slog.String("checkout_request_id", result.CheckoutRequestID),
			slog.String("status", string(result.Status)),
		)
	case errors.Is(err, domainErrors.ErrPaymentFinalized):
		u.logger.Info("duplicate payment callback ignored",
			slog.String("checkout_request_id", result.CheckoutRequestID))
	case errors.Is(err, domainErrors.ErrNotFound):
		u.logger.Warn("callback for unknown payment",
			slog.String("checkout_request_id", result.CheckoutRequestID))
	default:
		u.logger.Error("finalize payment",
			slog.String("checkout_request_id", result.CheckoutRequestID),
			slog.Any("error", err))
	}
}

// PollStatus is the customer-facing payment status. A poll on a pending
// attempt past its TTL expires it in place. A poll observing success
// materializes the order exactly once and cleans up session state.
type PollStatus struct {
	Status      model.PaymentStatus
	Description string
	Order       *model.Order
}

// Poll reports the state of the session's in-flight payment.
func (u *PaymentUseCase) Poll(ctx context.Context, sessionID string) (*PollStatus, error) {
	checkoutRequestID, err := u.sessions.GetPendingPayment(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	attempt, err := u.payments.GetByCheckoutRequestID(ctx, checkoutRequestID)
	if err != nil {
		return nil, err
	}

	if attempt.Expired(u.now(), u.expiry) {
		if settled := u.expireAttempt(ctx, checkoutRequestID); settled {
			// A callback landed between our read and the expiry write;
			// re-read and report the settled outcome instead.
			attempt, err = u.payments.GetByCheckoutRequestID(ctx, checkoutRequestID)
			if err != nil {
				return nil, err
			}
		} else {
			u.cleanupSession(ctx, sessionID, checkoutRequestID, false)
			return &PollStatus{Status: model.PaymentStatusFailed, Description: expiredDescription}, nil
		}
	}

	switch attempt.Status {
	case model.PaymentStatusPending:
		return &PollStatus{Status: model.PaymentStatusPending}, nil

	case model.PaymentStatusSuccess:
		order, err := u.materialize(ctx, attempt)
		if err != nil {
			return nil, err
		}
		u.cleanupSession(ctx, sessionID, checkoutRequestID, true)
		return &PollStatus{Status: model.PaymentStatusSuccess, Order: order}, nil

	default:
		u.cleanupSession(ctx, sessionID, checkoutRequestID, false)
		return &PollStatus{Status: attempt.Status, Description: attempt.ResultDescription}, nil
	}
}

const expiredDescription = "payment request expired"

// expireAttempt fails a stale pending attempt. It reports whether the attempt
// turned out to be already settled, meaning the failure write lost to a
// concurrent reconciliation.
func (u *PaymentUseCase) expireAttempt(ctx context.Context, checkoutRequestID string) bool {
	err := u.payments.Finalize(ctx, model.PaymentResult{
		CheckoutRequestID: checkoutRequestID,
		Status:            model.PaymentStatusFailed,
		Description:       expiredDescription,
	})
	switch {
	case err == nil:
		return false
	case errors.Is(err, domainErrors.ErrPaymentFinalized):
		return true
	default:
		u.logger.Error("expire payment",
			slog.String("checkout_request_id", checkoutRequestID), slog.Any("error", err))
		return false
	}
}

// materialize turns a successful attempt into an order, using the attempt's
// order claim for idempotency. The checkout snapshot is only needed for the
// first materialization; later polls return the already-created order even
// if the snapshot has expired since.
func (u *PaymentUseCase) materialize(ctx context.Context, attempt *model.PaymentAttempt) (*model.Order, error) {
	var checkout repository.CheckoutOrder
	snapshot, err := u.sessions.GetSnapshot(ctx, attempt.CheckoutRequestID)
	switch {
	case err == nil:
		checkout = repository.CheckoutOrder{
			CustomerName:    snapshot.CustomerName,
			PhoneNumber:     snapshot.PhoneNumber,
			Email:           snapshot.Email,
			DeliveryAddress: snapshot.DeliveryAddress,
			Lines:           snapshot.Lines,
		}
	case errors.Is(err, domainErrors.ErrSnapshotExpired):
		if attempt.OrderID == nil {
			return nil, domainErrors.ErrSnapshotExpired
		}
	default:
		return nil, err
	}

	order, created, err := u.payments.MaterializeOrder(ctx, attempt.CheckoutRequestID, checkout)
	if err != nil {
		return nil, err
	}
	if created {
		u.notifier.OrderConfirmation(ctx, order, u.settings.Get())
		syncRestockAlerts(ctx, u.products, u.finance, u.threshold, u.logger)
	}
	return order, nil
}

// ExpireBatch fails pending attempts created before cutoff. Used by the
// background reaper.
func (u *PaymentUseCase) ExpireBatch(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	return u.payments.ExpireBatch(ctx, cutoff, limit)
}

// DiscardSnapshot drops the checkout snapshot of a reaped attempt.
func (u *PaymentUseCase) DiscardSnapshot(ctx context.Context, checkoutRequestID string) error {
	return u.sessions.DeleteSnapshot(ctx, checkoutRequestID)
}

// cleanupSession drops the session's pending payment marker, the snapshot
// and, after a successful purchase, the cart.
func (u *PaymentUseCase) cleanupSession(ctx context.Context, sessionID, checkoutRequestID string, clearCart bool) {
	if err := u.sessions.ClearPendingPayment(ctx, sessionID); err != nil {
		u.logger.Error("clear pending payment", slog.String("session", sessionID), slog.Any("error", err))
	}
	if err := u.sessions.DeleteSnapshot(ctx, checkoutRequestID); err != nil {
		u.logger.Error("delete checkout snapshot",
			slog.String("checkout_request_id", checkoutRequestID), slog.Any("error", err))
	}
	if clearCart {
		if err := u.sessions.ClearCart(ctx, sessionID); err != nil {
			u.logger.Error("clear cart", slog.String("session", sessionID), slog.Any("error", err))
		}
	}
}
