package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// FinanceUseCase covers monthly budgeting, expense tracking, capital
// movement and restock alerts.
type FinanceUseCase struct {
	finance   repository.FinanceRepository
	products  repository.ProductRepository
	logger    *slog.Logger
	threshold int
}

// NewFinanceUseCase constructs FinanceUseCase.
func NewFinanceUseCase(finance repository.FinanceRepository, products repository.ProductRepository, logger *slog.Logger, threshold int) *FinanceUseCase {
	return &FinanceUseCase{finance: finance, products: products, logger: logger, threshold: threshold}
}

// CreateCategory adds an expense category.
func (u *FinanceUseCase) CreateCategory(ctx context.Context, category *model.BudgetCategory) (*model.BudgetCategory, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return nil, domainErrors.ErrInvalidProduct
	}
	return u.finance.CreateCategory(ctx, category)
}

// Categories lists all expense categories.
func (u *FinanceUseCase) Categories(ctx context.Context) ([]model.BudgetCategory, error) {
	return u.finance.ListCategories(ctx)
}

func validBudgetMonth(year, month int) bool {
	return year >= 2000 && year <= 2100 && month >= 1 && month <= 12
}

// CreateBudget opens a monthly budget with optional upfront allocations.
// Allocations must not exceed the month's capital.
func (u *FinanceUseCase) CreateBudget(ctx context.Context, budget *model.MonthlyBudget, allocations []repository.AllocationInput) (*model.MonthlyBudget, error) {
	if !validBudgetMonth(budget.Year, budget.Month) {
		return nil, domainErrors.ErrInvalidPeriod
	}
	if !budget.TotalCapital.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}

	allocated := decimal.Zero
	for _, a := range allocations {
		if !a.Amount.IsPositive() {
			return nil, domainErrors.ErrInvalidAmount
		}
		allocated = allocated.Add(a.Amount)
	}
	if allocated.GreaterThan(budget.TotalCapital) {
		return nil, domainErrors.ErrInvalidAmount
	}

	return u.finance.CreateBudget(ctx, budget, allocations)
}

// Budget fetches the budget for a month with its allocations.
func (u *FinanceUseCase) Budget(ctx context.Context, year, month int) (*model.MonthlyBudget, error) {
	if !validBudgetMonth(year, month) {
		return nil, domainErrors.ErrInvalidPeriod
	}
	return u.finance.GetBudget(ctx, year, month)
}

// AddExpense logs an expense against a budget category.
func (u *FinanceUseCase) AddExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	if !expense.Amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if expense.Date.IsZero() {
		expense.Date = time.Now()
	}
	return u.finance.AddExpense(ctx, expense)
}

// DeleteExpense removes an expense and resyncs its allocation.
func (u *FinanceUseCase) DeleteExpense(ctx context.Context, id int64) error {
	return u.finance.DeleteExpense(ctx, id)
}

// AddCapitalEntry records money flowing in or out of the business.
func (u *FinanceUseCase) AddCapitalEntry(ctx context.Context, entry *model.CapitalEntry) (*model.CapitalEntry, error) {
	if entry.EntryType != model.CapitalIn && entry.EntryType != model.CapitalOut {
		return nil, domainErrors.ErrInvalidStatus
	}
	if !entry.Amount.IsPositive() {
		return nil, domainErrors.ErrInvalidAmount
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	return u.finance.AddCapitalEntry(ctx, entry)
}

// Overview assembles the month dashboard: budget state, revenue against
// cost of goods sold, expense totals, capital movement and active restock
// alerts. A month without a budget still gets the sales-side figures.
func (u *FinanceUseCase) Overview(ctx context.Context, year, month int) (*model.FinanceOverview, error) {
	if !validBudgetMonth(year, month) {
		return nil, domainErrors.ErrInvalidPeriod
	}

	overview := &model.FinanceOverview{Year: year, Month: month}

	budget, err := u.finance.GetBudget(ctx, year, month)
	switch {
	case err == nil:
		overview.Budget = budget
	case errors.Is(err, domainErrors.ErrNotFound):
	default:
		return nil, err
	}

	if overview.Revenue, err = u.finance.MonthlyRevenue(ctx, year, month); err != nil {
		return nil, err
	}
	if overview.COGS, err = u.finance.MonthlyCOGS(ctx, year, month); err != nil {
		return nil, err
	}
	overview.GrossProfit = overview.Revenue.Sub(overview.COGS)

	if budget != nil {
		overview.ExpensesTotal = budget.TotalSpent()
		if overview.CapitalIn, overview.CapitalOut, err = u.finance.CapitalTotals(ctx, budget.ID); err != nil {
			return nil, err
		}
		if overview.RecentExpenses, err = u.finance.RecentExpenses(ctx, budget.ID, 10); err != nil {
			return nil, err
		}
	}
	overview.NetProfit = overview.GrossProfit.Sub(overview.ExpensesTotal)

	if overview.ActiveAlerts, err = u.finance.ActiveRestockAlerts(ctx); err != nil {
		return nil, err
	}
	return overview, nil
}

// RestockAlerts lists the alerts awaiting action.
func (u *FinanceUseCase) RestockAlerts(ctx context.Context) ([]model.RestockAlert, error) {
	return u.finance.ActiveRestockAlerts(ctx)
}

// DismissRestockAlert marks an alert handled.
func (u *FinanceUseCase) DismissRestockAlert(ctx context.Context, id int64) error {
	return u.finance.DismissRestockAlert(ctx, id)
}

// SyncRestockAlerts rescans ready stock and raises alerts for anything at
// or below the threshold.
func (u *FinanceUseCase) SyncRestockAlerts(ctx context.Context) {
	syncRestockAlerts(ctx, u.products, u.finance, u.threshold, u.logger)
}
