package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

type financeRepository struct {
	storage *Storage
}

func (r *financeRepository) CreateCategory(ctx context.Context, category *model.BudgetCategory) (*model.BudgetCategory, error) {
	const query = `INSERT INTO budget_categories (name, icon, color, is_stock_category)
                   VALUES ($1, $2, $3, $4)
                   RETURNING id, created_at`
	created := *category
	err := r.storage.pool.QueryRow(ctx, query,
		category.Name, category.Icon, category.Color, category.IsStockCategory,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &created, nil
}

func (r *financeRepository) ListCategories(ctx context.Context) ([]model.BudgetCategory, error) {
	const query = `SELECT id, name, icon, color, is_stock_category, created_at
                   FROM budget_categories ORDER BY name`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.BudgetCategory
	for rows.Next() {
		var c model.BudgetCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.IsStockCategory, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *financeRepository) CreateBudget(ctx context.Context, budget *model.MonthlyBudget, allocations []repository.AllocationInput) (*model.MonthlyBudget, error) {
	created := *budget
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertBudget = `INSERT INTO monthly_budgets (year, month, total_capital, notes)
                              VALUES ($1, $2, $3, $4)
                              RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertBudget,
			budget.Year, budget.Month, budget.TotalCapital, budget.Notes,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return domainErrors.ErrAlreadyExists
			}
			return err
		}

		const insertAllocation = `INSERT INTO budget_allocations (budget_id, category_id, allocated_amount)
                                  VALUES ($1, $2, $3)
                                  RETURNING id`
		for _, alloc := range allocations {
			row := model.BudgetAllocation{
				BudgetID:        created.ID,
				CategoryID:      alloc.CategoryID,
				AllocatedAmount: alloc.Amount,
				SpentAmount:     decimal.Zero,
			}
			if err := tx.QueryRow(ctx, insertAllocation, created.ID, alloc.CategoryID, alloc.Amount).Scan(&row.ID); err != nil {
				return err
			}
			created.Allocations = append(created.Allocations, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *financeRepository) GetBudget(ctx context.Context, year, month int) (*model.MonthlyBudget, error) {
	const query = `SELECT id, year, month, total_capital, notes, created_at, updated_at
                   FROM monthly_budgets WHERE year=$1 AND month=$2`
	var b model.MonthlyBudget
	err := r.storage.pool.QueryRow(ctx, query, year, month).Scan(
		&b.ID, &b.Year, &b.Month, &b.TotalCapital, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const allocQuery = `SELECT a.id, a.budget_id, a.category_id, c.name, a.allocated_amount, a.spent_amount
                        FROM budget_allocations a
                        JOIN budget_categories c ON c.id = a.category_id
                        WHERE a.budget_id=$1 ORDER BY c.name`
	rows, err := r.storage.pool.Query(ctx, allocQuery, b.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var a model.BudgetAllocation
		if err := rows.Scan(&a.ID, &a.BudgetID, &a.CategoryID, &a.CategoryName,
			&a.AllocatedAmount, &a.SpentAmount); err != nil {
			return nil, err
		}
		b.Allocations = append(b.Allocations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &b, nil
}

// resyncAllocation recomputes an allocation's spent amount from the expense
// rows, mirroring how expense mutations keep the two in step. Missing
// allocations are tolerated: expenses may be logged against categories the
// budget never allocated.
func resyncAllocation(ctx context.Context, tx pgx.Tx, budgetID, categoryID int64) error {
	const query = `UPDATE budget_allocations
                   SET spent_amount = (
                       SELECT COALESCE(SUM(amount), 0) FROM expenses
                       WHERE budget_id=$1 AND category_id=$2
                   )
                   WHERE budget_id=$1 AND category_id=$2`
	_, err := tx.Exec(ctx, query, budgetID, categoryID)
	return err
}

func (r *financeRepository) AddExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	created := *expense
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO expenses (budget_id, category_id, amount, description, date, receipt_note)
                       VALUES ($1, $2, $3, $4, $5, $6)
                       RETURNING id, created_at`
		err := tx.QueryRow(ctx, query,
			expense.BudgetID, expense.CategoryID, expense.Amount,
			expense.Description, expense.Date, expense.ReceiptNote,
		).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			return err
		}
		return resyncAllocation(ctx, tx, expense.BudgetID, expense.CategoryID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *financeRepository) DeleteExpense(ctx context.Context, id int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var budgetID, categoryID int64
		const query = `DELETE FROM expenses WHERE id=$1 RETURNING budget_id, category_id`
		if err := tx.QueryRow(ctx, query, id).Scan(&budgetID, &categoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		return resyncAllocation(ctx, tx, budgetID, categoryID)
	})
}

func (r *financeRepository) RecentExpenses(ctx context.Context, budgetID int64, limit int) ([]model.Expense, error) {
	const query = `SELECT e.id, e.budget_id, e.category_id, c.name, e.amount, e.description, e.date, e.receipt_note, e.created_at
                   FROM expenses e
                   JOIN budget_categories c ON c.id = e.category_id
                   WHERE e.budget_id=$1
                   ORDER BY e.date DESC, e.created_at DESC
                   LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, budgetID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.BudgetID, &e.CategoryID, &e.CategoryName,
			&e.Amount, &e.Description, &e.Date, &e.ReceiptNote, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *financeRepository) AddCapitalEntry(ctx context.Context, entry *model.CapitalEntry) (*model.CapitalEntry, error) {
	const query = `INSERT INTO capital_entries (budget_id, entry_type, amount, description, date)
                   VALUES ($1, $2, $3, $4, $5)
                   RETURNING id, created_at`
	created := *entry
	err := r.storage.pool.QueryRow(ctx, query,
		entry.BudgetID, entry.EntryType, entry.Amount, entry.Description, entry.Date,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *financeRepository) CapitalTotals(ctx context.Context, budgetID int64) (decimal.Decimal, decimal.Decimal, error) {
	const query = `SELECT
                       COALESCE(SUM(amount) FILTER (WHERE entry_type='in'), 0),
                       COALESCE(SUM(amount) FILTER (WHERE entry_type='out'), 0)
                   FROM capital_entries WHERE budget_id=$1`
	var in, out decimal.Decimal
	if err := r.storage.pool.QueryRow(ctx, query, budgetID).Scan(&in, &out); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return in, out, nil
}

func (r *financeRepository) EnsureRestockAlert(ctx context.Context, alert *model.RestockAlert) error {
	const query = `INSERT INTO restock_alerts (product_id, qty_at_alert, estimated_restock_cost)
                   SELECT $1, $2, $3
                   WHERE NOT EXISTS (
                       SELECT 1 FROM restock_alerts WHERE product_id=$1 AND is_dismissed=FALSE
                   )`
	_, err := r.storage.pool.Exec(ctx, query, alert.ProductID, alert.QtyAtAlert, alert.EstimatedRestockCost)
	return err
}

func (r *financeRepository) ActiveRestockAlerts(ctx context.Context) ([]model.RestockAlert, error) {
	const query = `SELECT a.id, a.product_id, p.name, a.qty_at_alert, a.estimated_restock_cost,
                          a.is_dismissed, a.created_at, a.dismissed_at
                   FROM restock_alerts a
                   JOIN products p ON p.id = a.product_id
                   WHERE a.is_dismissed=FALSE
                   ORDER BY a.created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RestockAlert
	for rows.Next() {
		var a model.RestockAlert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.ProductName, &a.QtyAtAlert,
			&a.EstimatedRestockCost, &a.Dismissed, &a.CreatedAt, &a.DismissedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *financeRepository) DismissRestockAlert(ctx context.Context, id int64) error {
	const query = `UPDATE restock_alerts SET is_dismissed=TRUE, dismissed_at=NOW()
                   WHERE id=$1 AND is_dismissed=FALSE`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *financeRepository) MonthlyRevenue(ctx context.Context, year, month int) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(i.quantity * i.unit_price), 0)
                   FROM order_items i
                   JOIN orders o ON o.id = i.order_id
                   WHERE o.status='delivered'
                     AND date_part('year', o.created_at) = $1
                     AND date_part('month', o.created_at) = $2`
	var total decimal.Decimal
	if err := r.storage.pool.QueryRow(ctx, query, year, month).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *financeRepository) MonthlyCOGS(ctx context.Context, year, month int) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(i.quantity * p.purchase_cost), 0)
                   FROM order_items i
                   JOIN orders o ON o.id = i.order_id
                   JOIN products p ON p.id = i.product_id
                   WHERE o.status='delivered'
                     AND p.purchase_cost IS NOT NULL
                     AND date_part('year', o.created_at) = $1
                     AND date_part('month', o.created_at) = $2`
	var total decimal.Decimal
	if err := r.storage.pool.QueryRow(ctx, query, year, month).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}
