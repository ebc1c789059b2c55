package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetCategory is an owner-defined expense category.
type BudgetCategory struct {
	ID              int64
	Name            string
	Icon            string
	Color           string
	IsStockCategory bool
	CreatedAt       time.Time
}

// MonthlyBudget is the capital available for one calendar month.
// Unique per (year, month).
type MonthlyBudget struct {
	ID           int64
	Year         int
	Month        int
	TotalCapital decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Allocations []BudgetAllocation
}

// Label renders the budget as "January 2026".
func (b MonthlyBudget) Label() string {
	return fmt.Sprintf("%s %d", time.Month(b.Month).String(), b.Year)
}

// TotalAllocated sums allocation amounts.
func (b MonthlyBudget) TotalAllocated() decimal.Decimal {
	total := decimal.Zero
	for _, a := range b.Allocations {
		total = total.Add(a.AllocatedAmount)
	}
	return total
}

// TotalSpent sums spent amounts across allocations.
func (b MonthlyBudget) TotalSpent() decimal.Decimal {
	total := decimal.Zero
	for _, a := range b.Allocations {
		total = total.Add(a.SpentAmount)
	}
	return total
}

// Unallocated is capital not yet assigned to a category.
func (b MonthlyBudget) Unallocated() decimal.Decimal {
	return b.TotalCapital.Sub(b.TotalAllocated())
}

// Remaining is capital not yet spent.
func (b MonthlyBudget) Remaining() decimal.Decimal {
	return b.TotalCapital.Sub(b.TotalSpent())
}

// UtilizationPercent is spent capital as a percentage of the month's total.
func (b MonthlyBudget) UtilizationPercent() float64 {
	if !b.TotalCapital.IsPositive() {
		return 0
	}
	ratio, _ := b.TotalSpent().Div(b.TotalCapital).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return ratio
}

// BudgetAllocation assigns part of a monthly budget to a category and tracks
// spend against it. SpentAmount is kept in sync with expense rows.
type BudgetAllocation struct {
	ID              int64
	BudgetID        int64
	CategoryID      int64
	CategoryName    string
	AllocatedAmount decimal.Decimal
	SpentAmount     decimal.Decimal
}

// Remaining is the unspent part of the allocation.
func (a BudgetAllocation) Remaining() decimal.Decimal {
	return a.AllocatedAmount.Sub(a.SpentAmount)
}

// PercentUsed is spend as a percentage of the allocation.
func (a BudgetAllocation) PercentUsed() float64 {
	if !a.AllocatedAmount.IsPositive() {
		return 0
	}
	ratio, _ := a.SpentAmount.Div(a.AllocatedAmount).Mul(decimal.NewFromInt(100)).Round(1).Float64()
	return ratio
}

// OverBudget reports whether spend exceeds the allocation.
func (a BudgetAllocation) OverBudget() bool {
	return a.SpentAmount.GreaterThan(a.AllocatedAmount)
}

// Expense is one logged expense entry against a budget category.
type Expense struct {
	ID           int64
	BudgetID     int64
	CategoryID   int64
	CategoryName string
	Amount       decimal.Decimal
	Description  string
	Date         time.Time
	ReceiptNote  string
	CreatedAt    time.Time
}

// CapitalEntryType marks money flowing in or out of the business.
type CapitalEntryType string

const (
	CapitalIn  CapitalEntryType = "in"
	CapitalOut CapitalEntryType = "out"
)

// CapitalEntry tracks non-revenue money movement for a budget month.
type CapitalEntry struct {
	ID          int64
	BudgetID    int64
	EntryType   CapitalEntryType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// RestockAlert flags a ready-stock product that has run low.
type RestockAlert struct {
	ID                   int64
	ProductID            int64
	ProductName          string
	QtyAtAlert           int
	EstimatedRestockCost *decimal.Decimal
	Dismissed            bool
	CreatedAt            time.Time
	DismissedAt          *time.Time
}

// FinanceOverview is the month dashboard aggregate.
type FinanceOverview struct {
	Year           int
	Month          int
	Budget         *MonthlyBudget
	Revenue        decimal.Decimal
	COGS           decimal.Decimal
	GrossProfit    decimal.Decimal
	ExpensesTotal  decimal.Decimal
	NetProfit      decimal.Decimal
	CapitalIn      decimal.Decimal
	CapitalOut     decimal.Decimal
	ActiveAlerts   []RestockAlert
	RecentExpenses []Expense
}
