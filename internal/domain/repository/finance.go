package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kahenya/duka/internal/domain/model"
)

// AllocationInput assigns part of a budget to a category at creation time.
type AllocationInput struct {
	CategoryID int64
	Amount     decimal.Decimal
}

// FinanceRepository covers the budgeting and expense tracking tables.
type FinanceRepository interface {
	CreateCategory(ctx context.Context, category *model.BudgetCategory) (*model.BudgetCategory, error)
	ListCategories(ctx context.Context) ([]model.BudgetCategory, error)

	// CreateBudget inserts the monthly budget and its allocations in one
	// transaction; a budget for the same year+month returns ErrAlreadyExists.
	CreateBudget(ctx context.Context, budget *model.MonthlyBudget, allocations []AllocationInput) (*model.MonthlyBudget, error)
	GetBudget(ctx context.Context, year, month int) (*model.MonthlyBudget, error)

	// AddExpense inserts the expense and recomputes the matching
	// allocation's spent amount in the same transaction.
	AddExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	RecentExpenses(ctx context.Context, budgetID int64, limit int) ([]model.Expense, error)

	AddCapitalEntry(ctx context.Context, entry *model.CapitalEntry) (*model.CapitalEntry, error)
	CapitalTotals(ctx context.Context, budgetID int64) (in, out decimal.Decimal, err error)

	// EnsureRestockAlert creates an alert for the product unless an active
	// one already exists.
	EnsureRestockAlert(ctx context.Context, alert *model.RestockAlert) error
	ActiveRestockAlerts(ctx context.Context) ([]model.RestockAlert, error)
	DismissRestockAlert(ctx context.Context, id int64) error

	// MonthlyRevenue sums delivered order totals for the month.
	MonthlyRevenue(ctx context.Context, year, month int) (decimal.Decimal, error)
	// MonthlyCOGS sums purchase costs of delivered order lines for the month.
	MonthlyCOGS(ctx context.Context, year, month int) (decimal.Decimal, error)
}
