package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest creates a budget category.
type CategoryRequest struct {
	Name            string `json:"name"`
	Icon            string `json:"icon"`
	Color           string `json:"color"`
	IsStockCategory bool   `json:"is_stock_category"`
}

// CategoryResponse describes a budget category.
type CategoryResponse struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Icon            string `json:"icon,omitempty"`
	Color           string `json:"color,omitempty"`
	IsStockCategory bool   `json:"is_stock_category"`
}

// AllocationRequest assigns part of a budget to a category.
type AllocationRequest struct {
	CategoryID int64           `json:"category_id"`
	Amount     decimal.Decimal `json:"amount"`
}

// BudgetRequest creates a monthly budget with its allocations.
type BudgetRequest struct {
	Year         int                 `json:"year"`
	Month        int                 `json:"month"`
	TotalCapital decimal.Decimal     `json:"total_capital"`
	Notes        string              `json:"notes"`
	Allocations  []AllocationRequest `json:"allocations"`
}

// AllocationResponse describes one category allocation of a budget.
type AllocationResponse struct {
	ID              int64           `json:"id"`
	CategoryID      int64           `json:"category_id"`
	CategoryName    string          `json:"category_name"`
	AllocatedAmount decimal.Decimal `json:"allocated_amount"`
	SpentAmount     decimal.Decimal `json:"spent_amount"`
	Remaining       decimal.Decimal `json:"remaining"`
	PercentUsed     float64         `json:"percent_used"`
	OverBudget      bool            `json:"over_budget"`
}

// BudgetResponse describes a monthly budget with derived figures.
type BudgetResponse struct {
	ID                 int64                `json:"id"`
	Year               int                  `json:"year"`
	Month              int                  `json:"month"`
	Label              string               `json:"label"`
	TotalCapital       decimal.Decimal      `json:"total_capital"`
	TotalAllocated     decimal.Decimal      `json:"total_allocated"`
	TotalSpent         decimal.Decimal      `json:"total_spent"`
	Unallocated        decimal.Decimal      `json:"unallocated"`
	Remaining          decimal.Decimal      `json:"remaining"`
	UtilizationPercent float64              `json:"utilization_percent"`
	Notes              string               `json:"notes,omitempty"`
	Allocations        []AllocationResponse `json:"allocations"`
}

// ExpenseRequest records an expense against a budget category.
type ExpenseRequest struct {
	BudgetID    int64           `json:"budget_id"`
	CategoryID  int64           `json:"category_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	ReceiptNote string          `json:"receipt_note"`
}

// ExpenseResponse describes one logged expense.
type ExpenseResponse struct {
	ID           int64           `json:"id"`
	BudgetID     int64           `json:"budget_id"`
	CategoryID   int64           `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	ReceiptNote  string          `json:"receipt_note,omitempty"`
}

// CapitalEntryRequest records money flowing in or out of the business.
type CapitalEntryRequest struct {
	BudgetID    int64           `json:"budget_id"`
	EntryType   string          `json:"entry_type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// CapitalEntryResponse describes one capital movement.
type CapitalEntryResponse struct {
	ID          int64           `json:"id"`
	BudgetID    int64           `json:"budget_id"`
	EntryType   string          `json:"entry_type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// RestockAlertResponse flags a ready-stock product running low.
type RestockAlertResponse struct {
	ID                   int64            `json:"id"`
	ProductID            int64            `json:"product_id"`
	ProductName          string           `json:"product_name"`
	QtyAtAlert           int              `json:"qty_at_alert"`
	EstimatedRestockCost *decimal.Decimal `json:"estimated_restock_cost,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
}

// FinanceOverviewResponse is the month dashboard aggregate.
type FinanceOverviewResponse struct {
	Year           int                    `json:"year"`
	Month          int                    `json:"month"`
	Budget         *BudgetResponse        `json:"budget,omitempty"`
	Revenue        decimal.Decimal        `json:"revenue"`
	COGS           decimal.Decimal        `json:"cogs"`
	GrossProfit    decimal.Decimal        `json:"gross_profit"`
	ExpensesTotal  decimal.Decimal        `json:"expenses_total"`
	NetProfit      decimal.Decimal        `json:"net_profit"`
	CapitalIn      decimal.Decimal        `json:"capital_in"`
	CapitalOut     decimal.Decimal        `json:"capital_out"`
	ActiveAlerts   []RestockAlertResponse `json:"active_alerts"`
	RecentExpenses []ExpenseResponse      `json:"recent_expenses"`
}
