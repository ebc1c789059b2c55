package app

import (
	"context"
	"time"

	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
	"github.com/kahenya/duka/internal/usecase"
)

// StoreFacade is the single application surface the HTTP layer and the
// background reaper talk to. It delegates to the use cases without adding
// behaviour of its own.
type StoreFacade struct {
	catalog  *usecase.CatalogUseCase
	cart     *usecase.CartUseCase
	checkout *usecase.CheckoutUseCase
	payments *usecase.PaymentUseCase
	orders   *usecase.OrderUseCase
	reports  *usecase.ReportUseCase
	finance  *usecase.FinanceUseCase
	settings *usecase.SettingsUseCase
	staff    *usecase.StaffUseCase
}

// NewStoreFacade constructs the facade over the use cases.
func NewStoreFacade(
	catalog *usecase.CatalogUseCase,
	cart *usecase.CartUseCase,
	checkout *usecase.CheckoutUseCase,
	payments *usecase.PaymentUseCase,
	orders *usecase.OrderUseCase,
	reports *usecase.ReportUseCase,
	finance *usecase.FinanceUseCase,
	settings *usecase.SettingsUseCase,
	staff *usecase.StaffUseCase,
) *StoreFacade {
	return &StoreFacade{
		catalog:  catalog,
		cart:     cart,
		checkout: checkout,
		payments: payments,
		orders:   orders,
		reports:  reports,
		finance:  finance,
		settings: settings,
		staff:    staff,
	}
}

// Catalog.

func (f *StoreFacade) Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return f.catalog.List(ctx, filter)
}

func (f *StoreFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.catalog.Get(ctx, id)
}

func (f *StoreFacade) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	return f.catalog.Create(ctx, p)
}

func (f *StoreFacade) UpdateProduct(ctx context.Context, p *model.Product) error {
	return f.catalog.Update(ctx, p)
}

func (f *StoreFacade) DeleteProduct(ctx context.Context, id int64) error {
	return f.catalog.Delete(ctx, id)
}

// Cart.

func (f *StoreFacade) Cart(ctx context.Context, sessionID string) (*model.Cart, error) {
	return f.cart.Get(ctx, sessionID)
}

func (f *StoreFacade) AddToCart(ctx context.Context, sessionID string, productID int64, size string, qty int) (*model.Cart, error) {
	return f.cart.Add(ctx, sessionID, productID, size, qty)
}

func (f *StoreFacade) UpdateCartLine(ctx context.Context, sessionID, key string, qty int) (*model.Cart, error) {
	return f.cart.UpdateQuantity(ctx, sessionID, key, qty)
}

func (f *StoreFacade) RemoveFromCart(ctx context.Context, sessionID, key string) (*model.Cart, error) {
	return f.cart.Remove(ctx, sessionID, key)
}

func (f *StoreFacade) ClearCart(ctx context.Context, sessionID string) error {
	return f.cart.Clear(ctx, sessionID)
}

// Checkout and payment.

func (f *StoreFacade) PlaceCashOrder(ctx context.Context, sessionID string, customer usecase.CustomerInfo) (*model.Order, error) {
	return f.checkout.PlaceCashOrder(ctx, sessionID, customer)
}

func (f *StoreFacade) InitiatePayment(ctx context.Context, sessionID string, customer usecase.CustomerInfo) (string, error) {
	return f.payments.Initiate(ctx, sessionID, customer)
}

func (f *StoreFacade) HandlePaymentCallback(ctx context.Context, result model.PaymentResult) {
	f.payments.HandleCallback(ctx, result)
}

func (f *StoreFacade) PollPayment(ctx context.Context, sessionID string) (*usecase.PollStatus, error) {
	return f.payments.Poll(ctx, sessionID)
}

func (f *StoreFacade) ExpirePayments(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	return f.payments.ExpireBatch(ctx, cutoff, limit)
}

func (f *StoreFacade) DiscardSnapshot(ctx context.Context, checkoutRequestID string) error {
	return f.payments.DiscardSnapshot(ctx, checkoutRequestID)
}

// Orders.

func (f *StoreFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *StoreFacade) TrackOrder(ctx context.Context, id int64, phone string) (*usecase.TrackingInfo, error) {
	return f.orders.Track(ctx, id, phone)
}

func (f *StoreFacade) Orders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.List(ctx, limit)
}

func (f *StoreFacade) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	return f.orders.UpdateStatus(ctx, orderID, status)
}

// Reporting.

func (f *StoreFacade) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	return f.reports.Dashboard(ctx)
}

func (f *StoreFacade) SalesSummary(ctx context.Context, period string) (*model.SalesSummary, error) {
	return f.reports.Summary(ctx, period)
}

func (f *StoreFacade) DailySales(ctx context.Context, days int) ([]model.SalesBucket, error) {
	return f.reports.DailySales(ctx, days)
}

func (f *StoreFacade) MonthlySales(ctx context.Context, months int) ([]model.SalesBucket, error) {
	return f.reports.MonthlySales(ctx, months)
}

func (f *StoreFacade) TopProducts(ctx context.Context, limit int) ([]model.ProductStats, error) {
	return f.reports.TopProducts(ctx, limit)
}

// Settings.

func (f *StoreFacade) StoreSettings() *model.StoreSettings {
	return f.settings.Get()
}

func (f *StoreFacade) UpdateStoreSettings(ctx context.Context, settings *model.StoreSettings) error {
	return f.settings.Update(ctx, settings)
}

// Finance.

func (f *StoreFacade) CreateBudgetCategory(ctx context.Context, category *model.BudgetCategory) (*model.BudgetCategory, error) {
	return f.finance.CreateCategory(ctx, category)
}

func (f *StoreFacade) BudgetCategories(ctx context.Context) ([]model.BudgetCategory, error) {
	return f.finance.Categories(ctx)
}

func (f *StoreFacade) CreateBudget(ctx context.Context, budget *model.MonthlyBudget, allocations []repository.AllocationInput) (*model.MonthlyBudget, error) {
	return f.finance.CreateBudget(ctx, budget, allocations)
}

func (f *StoreFacade) Budget(ctx context.Context, year, month int) (*model.MonthlyBudget, error) {
	return f.finance.Budget(ctx, year, month)
}

func (f *StoreFacade) AddExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	return f.finance.AddExpense(ctx, expense)
}

func (f *StoreFacade) DeleteExpense(ctx context.Context, id int64) error {
	return f.finance.DeleteExpense(ctx, id)
}

func (f *StoreFacade) AddCapitalEntry(ctx context.Context, entry *model.CapitalEntry) (*model.CapitalEntry, error) {
	return f.finance.AddCapitalEntry(ctx, entry)
}

func (f *StoreFacade) FinanceOverview(ctx context.Context, year, month int) (*model.FinanceOverview, error) {
	return f.finance.Overview(ctx, year, month)
}

func (f *StoreFacade) RestockAlerts(ctx context.Context) ([]model.RestockAlert, error) {
	return f.finance.RestockAlerts(ctx)
}

func (f *StoreFacade) DismissRestockAlert(ctx context.Context, id int64) error {
	return f.finance.DismissRestockAlert(ctx, id)
}

func (f *StoreFacade) SyncRestockAlerts(ctx context.Context) {
	f.finance.SyncRestockAlerts(ctx)
}

// Staff auth.

func (f *StoreFacade) RegisterStaff(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.staff.Register(ctx, login, password)
	return token, err
}

func (f *StoreFacade) AuthenticateStaff(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.staff.Authenticate(ctx, login, password)
	return token, err
}

func (f *StoreFacade) ParseToken(token string) (int64, error) {
	return f.staff.ParseToken(token)
}
