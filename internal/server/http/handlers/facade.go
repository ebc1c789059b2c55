package handlers

import (
	"context"

	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
	"github.com/kahenya/duka/internal/usecase"
)

// AuthFacade describes staff authentication capabilities required by handlers.
type AuthFacade interface {
	RegisterStaff(ctx context.Context, login, password string) (string, error)
	AuthenticateStaff(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// CatalogFacade exposes catalog reads and admin product management.
type CatalogFacade interface {
	Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// CartFacade exposes the visitor cart operations.
type CartFacade interface {
	Cart(ctx context.Context, sessionID string) (*model.Cart, error)
	AddToCart(ctx context.Context, sessionID string, productID int64, size string, qty int) (*model.Cart, error)
	UpdateCartLine(ctx context.Context, sessionID, key string, qty int) (*model.Cart, error)
	RemoveFromCart(ctx context.Context, sessionID, key string) (*model.Cart, error)
	ClearCart(ctx context.Context, sessionID string) error
}

// CheckoutFacade places orders settled in cash on pickup.
type CheckoutFacade interface {
	PlaceCashOrder(ctx context.Context, sessionID string, customer usecase.CustomerInfo) (*model.Order, error)
	StoreSettings() *model.StoreSettings
}

// PaymentFacade covers the push-payment flow.
type PaymentFacade interface {
	InitiatePayment(ctx context.Context, sessionID string, customer usecase.CustomerInfo) (string, error)
	HandlePaymentCallback(ctx context.Context, result model.PaymentResult)
	PollPayment(ctx context.Context, sessionID string) (*usecase.PollStatus, error)
}

// OrderFacade covers order reads, tracking and the staff status workflow.
type OrderFacade interface {
	Order(ctx context.Context, id int64) (*model.Order, error)
	TrackOrder(ctx context.Context, id int64, phone string) (*usecase.TrackingInfo, error)
	Orders(ctx context.Context, limit int) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error)
	StoreSettings() *model.StoreSettings
}

// ReportFacade provides the admin reporting aggregates.
type ReportFacade interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
	SalesSummary(ctx context.Context, period string) (*model.SalesSummary, error)
	DailySales(ctx context.Context, days int) ([]model.SalesBucket, error)
	MonthlySales(ctx context.Context, months int) ([]model.SalesBucket, error)
	TopProducts(ctx context.Context, limit int) ([]model.ProductStats, error)
}

// SettingsFacade manages the store-wide settings record.
type SettingsFacade interface {
	StoreSettings() *model.StoreSettings
	UpdateStoreSettings(ctx context.Context, settings *model.StoreSettings) error
}

// FinanceFacade covers budgeting, expenses, capital and restock alerts.
type FinanceFacade interface {
	CreateBudgetCategory(ctx context.Context, category *model.BudgetCategory) (*model.BudgetCategory, error)
	BudgetCategories(ctx context.Context) ([]model.BudgetCategory, error)
	CreateBudget(ctx context.Context, budget *model.MonthlyBudget, allocations []repository.AllocationInput) (*model.MonthlyBudget, error)
	Budget(ctx context.Context, year, month int) (*model.MonthlyBudget, error)
	AddExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
	AddCapitalEntry(ctx context.Context, entry *model.CapitalEntry) (*model.CapitalEntry, error)
	FinanceOverview(ctx context.Context, year, month int) (*model.FinanceOverview, error)
	RestockAlerts(ctx context.Context) ([]model.RestockAlert, error)
	DismissRestockAlert(ctx context.Context, id int64) error
	SyncRestockAlerts(ctx context.Context)
}

// StoreFacade aggregates the full set of operations used across handlers.
type StoreFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	CheckoutFacade
	PaymentFacade
	OrderFacade
	ReportFacade
	SettingsFacade
	FinanceFacade
}
