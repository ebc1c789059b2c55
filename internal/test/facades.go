package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
	"github.com/kahenya/duka/internal/usecase"
)

// AuthFacadeStub simulates staff authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
}

// RegisterStaff delegates to override or returns a fixed token.
func (s AuthFacadeStub) RegisterStaff(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

// AuthenticateStaff delegates to override or returns a fixed token.
func (s AuthFacadeStub) AuthenticateStaff(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken delegates to override or accepts any token as staff 1.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// SampleProduct returns a catalog item usable as a test default.
func SampleProduct() *model.Product {
	return &model.Product{
		ID:             1,
		Name:           "Classic Hoodie",
		Price:          decimal.NewFromInt(2500),
		Category:       model.CategoryHoodies,
		AvailableSizes: "S, M, L",
		StockType:      model.StockReady,
		StockQuantity:  10,
		CreatedAt:      time.Unix(0, 0),
	}
}

// CatalogFacadeStub provides controllable behaviour for catalog endpoints.
type CatalogFacadeStub struct {
	ProductsFn func(context.Context, repository.ProductFilter) ([]model.Product, error)
	ProductFn  func(context.Context, int64) (*model.Product, error)
	CreateFn   func(context.Context, *model.Product) (*model.Product, error)
	UpdateFn   func(context.Context, *model.Product) error
	DeleteFn   func(context.Context, int64) error
}

// Products delegates to override or returns one sample product.
func (s CatalogFacadeStub) Products(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx, filter)
	}
	return []model.Product{*SampleProduct()}, nil
}

// Product delegates to override or returns the sample product.
func (s CatalogFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	p := SampleProduct()
	p.ID = id
	return p, nil
}

// CreateProduct delegates to override or echoes the product with an id.
func (s CatalogFacadeStub) CreateProduct(ctx context.Context, p *model.Product) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, p)
	}
	created := *p
	created.ID = 1
	return &created, nil
}

// UpdateProduct delegates to override or succeeds.
func (s CatalogFacadeStub) UpdateProduct(ctx context.Context, p *model.Product) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, p)
	}
	return nil
}

// DeleteProduct delegates to override or succeeds.
func (s CatalogFacadeStub) DeleteProduct(ctx context.Context, id int64) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// SampleCart returns a one-line cart usable as a test default.
func SampleCart() *model.Cart {
	return &model.Cart{Lines: []model.CartLine{{
		Key:       model.CartLineKey(1, "M"),
		ProductID: 1,
		Name:      "Classic Hoodie",
		Size:      "M",
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(2500),
	}}}
}

// CartFacadeStub provides controllable behaviour for cart endpoints.
type CartFacadeStub struct {
	CartFn   func(context.Context, string) (*model.Cart, error)
	AddFn    func(context.Context, string, int64, string, int) (*model.Cart, error)
	UpdateFn func(context.Context, string, string, int) (*model.Cart, error)
	RemoveFn func(context.Context, string, string) (*model.Cart, error)
	ClearFn  func(context.Context, string) error
}

// Cart delegates to override or returns the sample cart.
func (s CartFacadeStub) Cart(ctx context.Context, sessionID string) (*model.Cart, error) {
	if s.CartFn != nil {
		return s.CartFn(ctx, sessionID)
	}
	return SampleCart(), nil
}

// AddToCart delegates to override or returns the sample cart.
func (s CartFacadeStub) AddToCart(ctx context.Context, sessionID string, productID int64, size string, qty int) (*model.Cart, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, sessionID, productID, size, qty)
	}
	return SampleCart(), nil
}

// UpdateCartLine delegates to override or returns the sample cart.
func (s CartFacadeStub) UpdateCartLine(ctx context.Context, sessionID, key string, qty int) (*model.Cart, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, sessionID, key, qty)
	}
	return SampleCart(), nil
}

// RemoveFromCart delegates to override or returns an empty cart.
func (s CartFacadeStub) RemoveFromCart(ctx context.Context, sessionID, key string) (*model.Cart, error) {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, sessionID, key)
	}
	return &model.Cart{}, nil
}

// ClearCart delegates to override or succeeds.
func (s CartFacadeStub) ClearCart(ctx context.Context, sessionID string) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, sessionID)
	}
	return nil
}

// SampleOrder returns a placed order usable as a test default.
func SampleOrder() *model.Order {
	return &model.Order{
		ID:              7,
		CustomerName:    "Atieno",
		PhoneNumber:     "254712345678",
		DeliveryAddress: "Moi Avenue",
		Status:          model.OrderStatusPending,
		CreatedAt:       time.Unix(0, 0),
		Lines: []model.OrderLine{{
			ProductID: 1,
			Name:      "Classic Hoodie",
			Size:      "M",
			Quantity:  2,
			UnitPrice: decimal.NewFromInt(2500),
		}},
	}
}

// SampleSettings returns a settings record usable as a test default.
func SampleSettings() *model.StoreSettings {
	return &model.StoreSettings{
		PickupLocation: "City Market, Stall 14",
		PickupDate:     time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		PickupTime:     "10:00-16:00",
		PickupDaysInfo: "Weekdays only",
		StorePhone:     "254700000000",
		StoreEmail:     "orders@duka.test",
	}
}

// CheckoutFacadeStub simulates the cash checkout.
type CheckoutFacadeStub struct {
	PlaceFn  func(context.Context, string, usecase.CustomerInfo) (*model.Order, error)
	Settings *model.StoreSettings
}

// PlaceCashOrder delegates to override or returns the sample order.
func (s CheckoutFacadeStub) PlaceCashOrder(ctx context.Context, sessionID string, customer usecase.CustomerInfo) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, sessionID, customer)
	}
	return SampleOrder(), nil
}

// StoreSettings returns configured or sample settings.
func (s CheckoutFacadeStub) StoreSettings() *model.StoreSettings {
	if s.Settings != nil {
		return s.Settings
	}
	return SampleSettings()
}

// PaymentFacadeStub simulates the push-payment flow.
type PaymentFacadeStub struct {
	InitiateFn func(context.Context, string, usecase.CustomerInfo) (string, error)
	CallbackFn func(context.Context, model.PaymentResult)
	PollFn     func(context.Context, string) (*usecase.PollStatus, error)
}

// InitiatePayment delegates to override or returns a fixed request id.
func (s PaymentFacadeStub) InitiatePayment(ctx context.Context, sessionID string, customer usecase.CustomerInfo) (string, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, sessionID, customer)
	}
	return "ws_CO_1", nil
}

// HandlePaymentCallback delegates to override or drops the result.
func (s PaymentFacadeStub) HandlePaymentCallback(ctx context.Context, result model.PaymentResult) {
	if s.CallbackFn != nil {
		s.CallbackFn(ctx, result)
	}
}

// PollPayment delegates to override or reports pending.
func (s PaymentFacadeStub) PollPayment(ctx context.Context, sessionID string) (*usecase.PollStatus, error) {
	if s.PollFn != nil {
		return s.PollFn(ctx, sessionID)
	}
	return &usecase.PollStatus{Status: model.PaymentStatusPending}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrderFn        func(context.Context, int64) (*model.Order, error)
	TrackFn        func(context.Context, int64, string) (*usecase.TrackingInfo, error)
	OrdersFn       func(context.Context, int) ([]model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) (*model.Order, error)
	Settings       *model.StoreSettings
}

// Order delegates to override or returns the sample order.
func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	order := SampleOrder()
	order.ID = id
	return order, nil
}

// TrackOrder delegates to override or returns the sample order with pickup.
func (s OrderFacadeStub) TrackOrder(ctx context.Context, id int64, phone string) (*usecase.TrackingInfo, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, id, phone)
	}
	order := SampleOrder()
	order.ID = id
	pickup := s.StoreSettings().Pickup()
	return &usecase.TrackingInfo{Order: order, Pickup: &pickup}, nil
}

// Orders delegates to override or returns one sample order.
func (s OrderFacadeStub) Orders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	return []model.Order{*SampleOrder()}, nil
}

// UpdateOrderStatus delegates to override or echoes the new status.
func (s OrderFacadeStub) UpdateOrderStatus(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	order := SampleOrder()
	order.ID = orderID
	order.Status = status
	return order, nil
}

// StoreSettings returns configured or sample settings.
func (s OrderFacadeStub) StoreSettings() *model.StoreSettings {
	if s.Settings != nil {
		return s.Settings
	}
	return SampleSettings()
}

// ReportFacadeStub provides canned reporting aggregates.
type ReportFacadeStub struct {
	DashboardFn   func(context.Context) (*model.DashboardStats, error)
	SummaryFn     func(context.Context, string) (*model.SalesSummary, error)
	DailyFn       func(context.Context, int) ([]model.SalesBucket, error)
	MonthlyFn     func(context.Context, int) ([]model.SalesBucket, error)
	TopProductsFn func(context.Context, int) ([]model.ProductStats, error)
}

// Dashboard delegates to override or returns canned stats.
func (s ReportFacadeStub) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	if s.DashboardFn != nil {
		return s.DashboardFn(ctx)
	}
	return &model.DashboardStats{TotalRevenue: decimal.NewFromInt(5000), TotalOrders: 1, AverageOrderValue: decimal.NewFromInt(5000), TotalProducts: 1}, nil
}

// SalesSummary delegates to override or echoes the period.
func (s ReportFacadeStub) SalesSummary(ctx context.Context, period string) (*model.SalesSummary, error) {
	if s.SummaryFn != nil {
		return s.SummaryFn(ctx, period)
	}
	return &model.SalesSummary{Period: period, TotalSales: decimal.NewFromInt(5000), TotalOrders: 1, TotalItems: 2, AverageOrderValue: decimal.NewFromInt(5000)}, nil
}

// DailySales delegates to override or returns one bucket.
func (s ReportFacadeStub) DailySales(ctx context.Context, days int) ([]model.SalesBucket, error) {
	if s.DailyFn != nil {
		return s.DailyFn(ctx, days)
	}
	return []model.SalesBucket{{Bucket: "2026-09-01", TotalSales: decimal.NewFromInt(5000), OrderCount: 1}}, nil
}

// MonthlySales delegates to override or returns one bucket.
func (s ReportFacadeStub) MonthlySales(ctx context.Context, months int) ([]model.SalesBucket, error) {
	if s.MonthlyFn != nil {
		return s.MonthlyFn(ctx, months)
	}
	return []model.SalesBucket{{Bucket: "2026-09", TotalSales: decimal.NewFromInt(5000), OrderCount: 1}}, nil
}

// TopProducts delegates to override or returns one row.
func (s ReportFacadeStub) TopProducts(ctx context.Context, limit int) ([]model.ProductStats, error) {
	if s.TopProductsFn != nil {
		return s.TopProductsFn(ctx, limit)
	}
	return []model.ProductStats{{ProductID: 1, ProductName: "Classic Hoodie", TotalSold: 2, TotalRevenue: decimal.NewFromInt(5000)}}, nil
}

// SettingsFacadeStub manages the settings record for tests.
type SettingsFacadeStub struct {
	Settings *model.StoreSettings
	UpdateFn func(context.Context, *model.StoreSettings) error
}

// StoreSettings returns configured or sample settings.
func (s SettingsFacadeStub) StoreSettings() *model.StoreSettings {
	if s.Settings != nil {
		return s.Settings
	}
	return SampleSettings()
}

// UpdateStoreSettings delegates to override or succeeds.
func (s SettingsFacadeStub) UpdateStoreSettings(ctx context.Context, settings *model.StoreSettings) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, settings)
	}
	return nil
}

// FinanceFacadeStub provides controllable behaviour for finance endpoints.
type FinanceFacadeStub struct {
	CreateCategoryFn func(context.Context, *model.BudgetCategory) (*model.BudgetCategory, error)
	CategoriesFn     func(context.Context) ([]model.BudgetCategory, error)
	CreateBudgetFn   func(context.Context, *model.MonthlyBudget, []repository.AllocationInput) (*model.MonthlyBudget, error)
	BudgetFn         func(context.Context, int, int) (*model.MonthlyBudget, error)
	AddExpenseFn     func(context.Context, *model.Expense) (*model.Expense, error)
	DeleteExpenseFn  func(context.Context, int64) error
	AddCapitalFn     func(context.Context, *model.CapitalEntry) (*model.CapitalEntry, error)
	OverviewFn       func(context.Context, int, int) (*model.FinanceOverview, error)
	AlertsFn         func(context.Context) ([]model.RestockAlert, error)
	DismissFn        func(context.Context, int64) error
	SyncFn           func(context.Context)
}

// CreateBudgetCategory delegates to override or echoes with an id.
func (s FinanceFacadeStub) CreateBudgetCategory(ctx context.Context, category *model.BudgetCategory) (*model.BudgetCategory, error) {
	if s.CreateCategoryFn != nil {
		return s.CreateCategoryFn(ctx, category)
	}
	created := *category
	created.ID = 1
	return &created, nil
}

// BudgetCategories delegates to override or returns one category.
func (s FinanceFacadeStub) BudgetCategories(ctx context.Context) ([]model.BudgetCategory, error) {
	if s.CategoriesFn != nil {
		return s.CategoriesFn(ctx)
	}
	return []model.BudgetCategory{{ID: 1, Name: "Stock", IsStockCategory: true}}, nil
}

// CreateBudget delegates to override or echoes with an id.
func (s FinanceFacadeStub) CreateBudget(ctx context.Context, budget *model.MonthlyBudget, allocations []repository.AllocationInput) (*model.MonthlyBudget, error) {
	if s.CreateBudgetFn != nil {
		return s.CreateBudgetFn(ctx, budget, allocations)
	}
	created := *budget
	created.ID = 1
	return &created, nil
}

// Budget delegates to override or returns a canned budget.
func (s FinanceFacadeStub) Budget(ctx context.Context, year, month int) (*model.MonthlyBudget, error) {
	if s.BudgetFn != nil {
		return s.BudgetFn(ctx, year, month)
	}
	return &model.MonthlyBudget{ID: 1, Year: year, Month: month, TotalCapital: decimal.NewFromInt(15000)}, nil
}

// AddExpense delegates to override or echoes with an id.
func (s FinanceFacadeStub) AddExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	if s.AddExpenseFn != nil {
		return s.AddExpenseFn(ctx, expense)
	}
	created := *expense
	created.ID = 1
	return &created, nil
}

// DeleteExpense delegates to override or succeeds.
func (s FinanceFacadeStub) DeleteExpense(ctx context.Context, id int64) error {
	if s.DeleteExpenseFn != nil {
		return s.DeleteExpenseFn(ctx, id)
	}
	return nil
}

// AddCapitalEntry delegates to override or echoes with an id.
func (s FinanceFacadeStub) AddCapitalEntry(ctx context.Context, entry *model.CapitalEntry) (*model.CapitalEntry, error) {
	if s.AddCapitalFn != nil {
		return s.AddCapitalFn(ctx, entry)
	}
	created := *entry
	created.ID = 1
	return &created, nil
}

// FinanceOverview delegates to override or returns a canned aggregate.
func (s FinanceFacadeStub) FinanceOverview(ctx context.Context, year, month int) (*model.FinanceOverview, error) {
	if s.OverviewFn != nil {
		return s.OverviewFn(ctx, year, month)
	}
	return &model.FinanceOverview{
		Year:        year,
		Month:       month,
		Revenue:     decimal.NewFromInt(15000),
		COGS:        decimal.NewFromInt(6000),
		GrossProfit: decimal.NewFromInt(9000),
		NetProfit:   decimal.NewFromInt(9000),
	}, nil
}

// RestockAlerts delegates to override or returns no alerts.
func (s FinanceFacadeStub) RestockAlerts(ctx context.Context) ([]model.RestockAlert, error) {
	if s.AlertsFn != nil {
		return s.AlertsFn(ctx)
	}
	return nil, nil
}

// DismissRestockAlert delegates to override or succeeds.
func (s FinanceFacadeStub) DismissRestockAlert(ctx context.Context, id int64) error {
	if s.DismissFn != nil {
		return s.DismissFn(ctx, id)
	}
	return nil
}

// SyncRestockAlerts delegates to override or does nothing.
func (s FinanceFacadeStub) SyncRestockAlerts(ctx context.Context) {
	if s.SyncFn != nil {
		s.SyncFn(ctx)
	}
}

// StoreFacadeStub aggregates all facade stubs for router-level tests.
type StoreFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	CheckoutFacadeStub
	PaymentFacadeStub
	OrderFacadeStub
	ReportFacadeStub
	SettingsFacadeStub
	FinanceFacadeStub
}

// StoreSettings resolves the ambiguity between the embedded stubs.
func (s StoreFacadeStub) StoreSettings() *model.StoreSettings {
	return s.SettingsFacadeStub.StoreSettings()
}
