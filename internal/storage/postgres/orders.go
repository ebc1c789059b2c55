package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

type orderRepository struct {
	storage *Storage
}

func (r *orderRepository) CreateFromCheckout(ctx context.Context, checkout repository.CheckoutOrder) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		created, err := materializeTx(ctx, tx, checkout)
		if err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// materializeTx performs the full order materialization inside tx: order row,
// lines at their cart-captured prices, guarded stock decrement, product
// stats, and the sales record. Any insufficient-stock line aborts the whole
// transaction, so rejection happens before any visible mutation.
func materializeTx(ctx context.Context, tx pgx.Tx, checkout repository.CheckoutOrder) (*model.Order, error) {
	if len(checkout.Lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	order := &model.Order{
		CustomerName:    checkout.CustomerName,
		PhoneNumber:     checkout.PhoneNumber,
		Email:           checkout.Email,
		DeliveryAddress: checkout.DeliveryAddress,
	}

	const insertOrder = `INSERT INTO orders (customer_name, phone_number, email, delivery_address)
                         VALUES ($1, $2, $3, $4)
                         RETURNING id, status, created_at`
	err := tx.QueryRow(ctx, insertOrder,
		checkout.CustomerName, checkout.PhoneNumber, checkout.Email, checkout.DeliveryAddress,
	).Scan(&order.ID, &order.Status, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	// Decrement only ready stock, and only when enough is on hand. The
	// condition makes the decrement atomic, so two racing checkouts cannot
	// oversubscribe the last unit.
	const decrementStock = `UPDATE products
                            SET stock_quantity = CASE WHEN stock_type='ready' THEN stock_quantity - $2 ELSE stock_quantity END
                            WHERE id=$1 AND (stock_type='warehouse' OR stock_quantity >= $2)
                            RETURNING purchase_cost`
	const insertItem = `INSERT INTO order_items (order_id, product_id, name, size, quantity, unit_price)
                        VALUES ($1, $2, $3, $4, $5, $6)
                        RETURNING id`
	const upsertStats = `INSERT INTO product_stats (product_id, total_sold, total_revenue, last_sold_at)
                         VALUES ($1, $2, $3, NOW())
                         ON CONFLICT (product_id) DO UPDATE
                         SET total_sold = product_stats.total_sold + EXCLUDED.total_sold,
                             total_revenue = product_stats.total_revenue + EXCLUDED.total_revenue,
                             last_sold_at = EXCLUDED.last_sold_at`

	profit := decimal.Zero
	for _, line := range checkout.Lines {
		var purchaseCost *decimal.Decimal
		err := tx.QueryRow(ctx, decrementStock, line.ProductID, line.Quantity).Scan(&purchaseCost)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// No row matched either because stock ran out or because the
				// product was deleted after it entered the cart; tell them apart.
				var exists bool
				const probe = `SELECT EXISTS (SELECT 1 FROM products WHERE id=$1)`
				if err := tx.QueryRow(ctx, probe, line.ProductID).Scan(&exists); err != nil {
					return nil, err
				}
				if !exists {
					return nil, domainErrors.ErrNotFound
				}
				return nil, domainErrors.ErrInsufficientStock
			}
			return nil, err
		}

		item := model.OrderLine{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Size:      line.Size,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
		if err := tx.QueryRow(ctx, insertItem,
			order.ID, line.ProductID, line.Name, line.Size, line.Quantity, line.UnitPrice,
		).Scan(&item.ID); err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, item)

		subtotal := item.Subtotal()
		if _, err := tx.Exec(ctx, upsertStats, line.ProductID, line.Quantity, subtotal); err != nil {
			return nil, err
		}

		if purchaseCost != nil {
			margin := line.UnitPrice.Sub(*purchaseCost).Mul(decimal.NewFromInt(int64(line.Quantity)))
			profit = profit.Add(margin)
		}
	}

	const insertSales = `INSERT INTO sales_records (order_id, total_items, total_amount, profit_estimate)
                         VALUES ($1, $2, $3, $4)`
	if _, err := tx.Exec(ctx, insertSales, order.ID, order.TotalItems(), order.Total(), profit); err != nil {
		return nil, err
	}

	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, customer_name, phone_number, email, delivery_address, status, created_at
                   FROM orders WHERE id=$1`
	var order model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.CustomerName, &order.PhoneNumber, &order.Email,
		&order.DeliveryAddress, &order.Status, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `SELECT id, order_id, product_id, name, size, quantity, unit_price
                        FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, itemsQuery, id)
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

func (r *orderRepository) List(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT o.id, o.customer_name, o.phone_number, o.email, o.delivery_address, o.status, o.created_at,
                          i.id, i.product_id, i.name, i.size, i.quantity, i.unit_price
                   FROM (SELECT * FROM orders ORDER BY created_at DESC LIMIT $1) o
                   LEFT JOIN order_items i ON i.order_id = o.id
                   ORDER BY o.created_at DESC, i.id`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		result []model.Order
		index  = map[int64]int{}
	)
	for rows.Next() {
		var (
			order model.Order
			line  model.OrderLine
			// line columns are NULL for orders without items
			lineID    *int64
			productID *int64
			name      *string
			size      *string
			quantity  *int
			unitPrice *decimal.Decimal
		)
		if err := rows.Scan(&order.ID, &order.CustomerName, &order.PhoneNumber, &order.Email,
			&order.DeliveryAddress, &order.Status, &order.CreatedAt,
			&lineID, &productID, &name, &size, &quantity, &unitPrice); err != nil {
			return nil, err
		}

		pos, seen := index[order.ID]
		if !seen {
			result = append(result, order)
			pos = len(result) - 1
			index[order.ID] = pos
		}
		if lineID != nil {
			line = model.OrderLine{
				ID: *lineID, OrderID: order.ID, ProductID: *productID,
				Name: *name, Size: *size, Quantity: *quantity, UnitPrice: *unitPrice,
			}
			result[pos].Lines = append(result[pos].Lines, line)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (model.OrderStatus, error) {
	const query = `UPDATE orders o SET status=$2
                   FROM (SELECT id, status FROM orders WHERE id=$1 FOR UPDATE) prev
                   WHERE o.id = prev.id
                   RETURNING prev.status`
	var previous model.OrderStatus
	err := r.storage.pool.QueryRow(ctx, query, orderID, status).Scan(&previous)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domainErrors.ErrNotFound
		}
		return "", err
	}
	return previous, nil
}
