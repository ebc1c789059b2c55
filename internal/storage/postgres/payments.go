package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

type paymentRepository struct {
	storage *Storage
}

func (r *paymentRepository) Create(ctx context.Context, attempt *model.PaymentAttempt) (*model.PaymentAttempt, error) {
	const query = `INSERT INTO payment_attempts (checkout_request_id, phone_number, amount, session_id)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, status, created_at`
	created := *attempt
	err := r.storage.pool.QueryRow(ctx, query,
		attempt.CheckoutRequestID, attempt.PhoneNumber, attempt.Amount, attempt.SessionID,
	).Scan(&created.ID, &created.Status, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

const attemptColumns = `id, checkout_request_id, phone_number, amount, status, receipt_code, result_description, session_id, order_id, settled_at, created_at`

func scanAttempt(row pgx.Row) (*model.PaymentAttempt, error) {
	var a model.PaymentAttempt
	err := row.Scan(&a.ID, &a.CheckoutRequestID, &a.PhoneNumber, &a.Amount, &a.Status,
		&a.ReceiptCode, &a.ResultDescription, &a.SessionID, &a.OrderID, &a.SettledAt, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *paymentRepository) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*model.PaymentAttempt, error) {
	const query = `SELECT ` + attemptColumns + ` FROM payment_attempts WHERE checkout_request_id=$1`
	return scanAttempt(r.storage.pool.QueryRow(ctx, query, checkoutRequestID))
}

// Finalize is the one-way gate out of pending: the status predicate makes a
// second callback for the same identifier a no-op.
func (r *paymentRepository) Finalize(ctx context.Context, result model.PaymentResult) error {
	const query = `UPDATE payment_attempts
                   SET status=$2, receipt_code=COALESCE(NULLIF($3, ''), receipt_code),
                       result_description=$4, settled_at=$5, amount=COALESCE($6, amount)
                   WHERE checkout_request_id=$1 AND status='pending'`
	tag, err := r.storage.pool.Exec(ctx, query,
		result.CheckoutRequestID, result.Status, result.ReceiptCode, result.Description,
		result.SettledAt, result.Amount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	const probe = `SELECT EXISTS (SELECT 1 FROM payment_attempts WHERE checkout_request_id=$1)`
	if err := r.storage.pool.QueryRow(ctx, probe, result.CheckoutRequestID).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domainErrors.ErrPaymentFinalized
	}
	return domainErrors.ErrNotFound
}

func (r *paymentRepository) MaterializeOrder(ctx context.Context, checkoutRequestID string, checkout repository.CheckoutOrder) (*model.Order, bool, error) {
	var (
		order   *model.Order
		created bool
	)
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const claim = `SELECT id, order_id FROM payment_attempts
                       WHERE checkout_request_id=$1 AND status='success'
                       FOR UPDATE`
		var (
			attemptID int64
			orderID   *int64
		)
		if err := tx.QueryRow(ctx, claim, checkoutRequestID).Scan(&attemptID, &orderID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if orderID != nil {
			// A previous poll already materialized; return its order.
			existing, err := loadOrderTx(ctx, tx, *orderID)
			if err != nil {
				return err
			}
			order = existing
			return nil
		}

		materialized, err := materializeTx(ctx, tx, checkout)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `UPDATE payment_attempts SET order_id=$2 WHERE id=$1`, attemptID, materialized.ID); err != nil {
			return err
		}
		order = materialized
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return order, created, nil
}

func loadOrderTx(ctx context.Context, tx pgx.Tx, orderID int64) (*model.Order, error) {
	const query = `SELECT id, customer_name, phone_number, email, delivery_address, status, created_at
                   FROM orders WHERE id=$1`
	var order model.Order
	err := tx.QueryRow(ctx, query, orderID).Scan(
		&order.ID, &order.CustomerName, &order.PhoneNumber, &order.Email,
		&order.DeliveryAddress, &order.Status, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	rows, err := tx.Query(ctx, `SELECT id, order_id, product_id, name, size, quantity, unit_price
                                FROM order_items WHERE order_id=$1 ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var line model.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Name,
			&line.Size, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *paymentRepository) ExpireBatch(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	const query = `UPDATE payment_attempts
                   SET status='failed', result_description='payment request expired'
                   WHERE id IN (
                       SELECT id FROM payment_attempts
                       WHERE status='pending' AND created_at < $1
                       ORDER BY created_at
                       LIMIT $2
                       FOR UPDATE SKIP LOCKED
                   )
                   RETURNING checkout_request_id`
	rows, err := r.storage.pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reaped []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		reaped = append(reaped, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reaped, nil
}
