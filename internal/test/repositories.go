package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// ProductRepositoryStub stores products in-memory for tests.
type ProductRepositoryStub struct {
	Products map[int64]*model.Product
	Next     int64
	Err      error
	LowFn    func(context.Context, int) ([]model.Product, error)
}

// NewProductRepositoryStub constructs a stub with initialized maps.
func NewProductRepositoryStub() *ProductRepositoryStub {
	return &ProductRepositoryStub{Products: make(map[int64]*model.Product), Next: 1}
}

// Add seeds a product and returns it with an assigned ID.
func (s *ProductRepositoryStub) Add(p model.Product) *model.Product {
	if p.ID == 0 {
		p.ID = s.Next
		s.Next++
	} else if p.ID >= s.Next {
		s.Next = p.ID + 1
	}
	stored := p
	s.Products[stored.ID] = &stored
	return &stored
}

func (s *ProductRepositoryStub) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Add(*p), nil
}

func (s *ProductRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) List(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Product
	for _, p := range s.Products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *ProductRepositoryStub) Update(ctx context.Context, p *model.Product) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[p.ID]; !ok {
		return domainErrors.ErrNotFound
	}
	copied := *p
	s.Products[p.ID] = &copied
	return nil
}

func (s *ProductRepositoryStub) Delete(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Products[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Products, id)
	return nil
}

func (s *ProductRepositoryStub) LowReadyStock(ctx context.Context, threshold int) ([]model.Product, error) {
	if s.LowFn != nil {
		return s.LowFn(ctx, threshold)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Product
	for _, p := range s.Products {
		if p.StockType == model.StockReady && p.StockQuantity <= threshold {
			out = append(out, *p)
		}
	}
	return out, nil
}

// OrderRepositoryStub materializes orders in-memory and decrements ready
// stock in a linked product stub when one is attached.
type OrderRepositoryStub struct {
	Orders   map[int64]*model.Order
	Next     int64
	Products *ProductRepositoryStub

	CreateFn       func(context.Context, repository.CheckoutOrder) (*model.Order, error)
	UpdateStatusFn func(context.Context, int64, model.OrderStatus) (model.OrderStatus, error)
}

// NewOrderRepositoryStub constructs a stub with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[int64]*model.Order), Next: 1}
}

func (s *OrderRepositoryStub) CreateFromCheckout(ctx context.Context, checkout repository.CheckoutOrder) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, checkout)
	}

	if s.Products != nil {
		for _, line := range checkout.Lines {
			p, ok := s.Products.Products[line.ProductID]
			if !ok {
				return nil, domainErrors.ErrNotFound
			}
			if !p.CanFulfil(line.Quantity) {
				return nil, domainErrors.ErrInsufficientStock
			}
		}
		for _, line := range checkout.Lines {
			p := s.Products.Products[line.ProductID]
			if p.StockType == model.StockReady {
				p.StockQuantity -= line.Quantity
			}
		}
	}

	order := &model.Order{
		ID:              s.Next,
		CustomerName:    checkout.CustomerName,
		PhoneNumber:     checkout.PhoneNumber,
		Email:           checkout.Email,
		DeliveryAddress: checkout.DeliveryAddress,
		Status:          model.OrderStatusPending,
		CreatedAt:       time.Now(),
	}
	s.Next++
	for _, line := range checkout.Lines {
		order.Lines = append(order.Lines, model.OrderLine{
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Name:      line.Name,
			Size:      line.Size,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	s.Orders[order.ID] = order
	return order, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if order, ok := s.Orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) List(ctx context.Context, limit int) ([]model.Order, error) {
	var out []model.Order
	for _, o := range s.Orders {
		out = append(out, *o)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) (model.OrderStatus, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, orderID, status)
	}
	order, ok := s.Orders[orderID]
	if !ok {
		return "", domainErrors.ErrNotFound
	}
	previous := order.Status
	order.Status = status
	return previous, nil
}

// PaymentRepositoryStub keeps payment attempts in-memory with the same
// one-way finalization and order-claim semantics as the real store.
type PaymentRepositoryStub struct {
	Attempts map[string]*model.PaymentAttempt
	Orders   *OrderRepositoryStub
	Next     int64

	FinalizeFn    func(context.Context, model.PaymentResult) error
	MaterializeFn func(context.Context, string, repository.CheckoutOrder) (*model.Order, bool, error)
}

// NewPaymentRepositoryStub constructs a stub backed by an order stub.
func NewPaymentRepositoryStub(orders *OrderRepositoryStub) *PaymentRepositoryStub {
	return &PaymentRepositoryStub{
		Attempts: make(map[string]*model.PaymentAttempt),
		Orders:   orders,
		Next:     1,
	}
}

func (s *PaymentRepositoryStub) Create(ctx context.Context, attempt *model.PaymentAttempt) (*model.PaymentAttempt, error) {
	if _, exists := s.Attempts[attempt.CheckoutRequestID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	copied := *attempt
	copied.ID = s.Next
	s.Next++
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now()
	}
	s.Attempts[copied.CheckoutRequestID] = &copied
	result := copied
	return &result, nil
}

func (s *PaymentRepositoryStub) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*model.PaymentAttempt, error) {
	if attempt, ok := s.Attempts[checkoutRequestID]; ok {
		copied := *attempt
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PaymentRepositoryStub) Finalize(ctx context.Context, result model.PaymentResult) error {
	if s.FinalizeFn != nil {
		return s.FinalizeFn(ctx, result)
	}
	attempt, ok := s.Attempts[result.CheckoutRequestID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if attempt.Status.Terminal() {
		return domainErrors.ErrPaymentFinalized
	}
	attempt.Status = result.Status
	attempt.ReceiptCode = result.ReceiptCode
	attempt.ResultDescription = result.Description
	if result.Amount != nil {
		attempt.Amount = *result.Amount
	}
	if result.SettledAt != nil {
		attempt.SettledAt = result.SettledAt
	} else {
		now := time.Now()
		attempt.SettledAt = &now
	}
	return nil
}

func (s *PaymentRepositoryStub) MaterializeOrder(ctx context.Context, checkoutRequestID string, checkout repository.CheckoutOrder) (*model.Order, bool, error) {
	if s.MaterializeFn != nil {
		return s.MaterializeFn(ctx, checkoutRequestID, checkout)
	}
	attempt, ok := s.Attempts[checkoutRequestID]
	if !ok {
		return nil, false, domainErrors.ErrNotFound
	}
	if attempt.Status != model.PaymentStatusSuccess {
		return nil, false, domainErrors.ErrNoPendingPayment
	}
	if attempt.OrderID != nil {
		order, err := s.Orders.GetByID(ctx, *attempt.OrderID)
		return order, false, err
	}
	order, err := s.Orders.CreateFromCheckout(ctx, checkout)
	if err != nil {
		return nil, false, err
	}
	attempt.OrderID = &order.ID
	return order, true, nil
}

func (s *PaymentRepositoryStub) ExpireBatch(ctx context.Context, cutoff time.Time, limit int) ([]string, error) {
	var reaped []string
	for id, attempt := range s.Attempts {
		if len(reaped) == limit {
			break
		}
		if attempt.Status == model.PaymentStatusPending && attempt.CreatedAt.Before(cutoff) {
			attempt.Status = model.PaymentStatusFailed
			attempt.ResultDescription = "payment request expired"
			reaped = append(reaped, id)
		}
	}
	return reaped, nil
}

// SessionRepositoryStub keeps session state in plain maps.
type SessionRepositoryStub struct {
	mu        sync.Mutex
	Carts     map[string]*model.Cart
	Snapshots map[string]*model.CheckoutSnapshot
	Pending   map[string]string
	Err       error
}

// NewSessionRepositoryStub constructs a stub with initialized maps.
func NewSessionRepositoryStub() *SessionRepositoryStub {
	return &SessionRepositoryStub{
		Carts:     make(map[string]*model.Cart),
		Snapshots: make(map[string]*model.CheckoutSnapshot),
		Pending:   make(map[string]string),
	}
}

func (s *SessionRepositoryStub) GetCart(ctx context.Context, sessionID string) (*model.Cart, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.Carts[sessionID]; ok {
		copied := *cart
		copied.Lines = append([]model.CartLine(nil), cart.Lines...)
		return &copied, nil
	}
	return &model.Cart{}, nil
}

func (s *SessionRepositoryStub) SaveCart(ctx context.Context, sessionID string, cart *model.Cart) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *cart
	copied.Lines = append([]model.CartLine(nil), cart.Lines...)
	s.Carts[sessionID] = &copied
	return nil
}

func (s *SessionRepositoryStub) ClearCart(ctx context.Context, sessionID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Carts, sessionID)
	return nil
}

func (s *SessionRepositoryStub) SaveSnapshot(ctx context.Context, checkoutRequestID string, snapshot *model.CheckoutSnapshot) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *snapshot
	s.Snapshots[checkoutRequestID] = &copied
	return nil
}

func (s *SessionRepositoryStub) GetSnapshot(ctx context.Context, checkoutRequestID string) (*model.CheckoutSnapshot, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot, ok := s.Snapshots[checkoutRequestID]; ok {
		copied := *snapshot
		return &copied, nil
	}
	return nil, domainErrors.ErrSnapshotExpired
}

func (s *SessionRepositoryStub) DeleteSnapshot(ctx context.Context, checkoutRequestID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Snapshots, checkoutRequestID)
	return nil
}

func (s *SessionRepositoryStub) SetPendingPayment(ctx context.Context, sessionID, checkoutRequestID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Pending[sessionID] = checkoutRequestID
	return nil
}

func (s *SessionRepositoryStub) GetPendingPayment(ctx context.Context, sessionID string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.Pending[sessionID]; ok {
		return id, nil
	}
	return "", domainErrors.ErrNoPendingPayment
}

func (s *SessionRepositoryStub) ClearPendingPayment(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Pending, sessionID)
	return nil
}

// SettingsRepositoryStub serves a fixed settings record.
type SettingsRepositoryStub struct {
	Settings *model.StoreSettings
	LoadErr  error
	Updated  []model.StoreSettings
}

func (s *SettingsRepositoryStub) Load(ctx context.Context) (*model.StoreSettings, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.Settings == nil {
		s.Settings = &model.StoreSettings{PickupLocation: "Main Store"}
	}
	copied := *s.Settings
	return &copied, nil
}

func (s *SettingsRepositoryStub) Update(ctx context.Context, settings *model.StoreSettings) error {
	copied := *settings
	s.Settings = &copied
	s.Updated = append(s.Updated, copied)
	return nil
}

// StaffRepositoryStub stores staff accounts in-memory for tests.
type StaffRepositoryStub struct {
	Users map[string]*model.StaffUser
	ByID  map[int64]*model.StaffUser
	Next  int64
	Err   error
}

// NewStaffRepositoryStub constructs a stub with initialized maps.
func NewStaffRepositoryStub() *StaffRepositoryStub {
	return &StaffRepositoryStub{
		Users: make(map[string]*model.StaffUser),
		ByID:  make(map[int64]*model.StaffUser),
		Next:  1,
	}
}

func (s *StaffRepositoryStub) Create(ctx context.Context, login, passwordHash string) (*model.StaffUser, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	user := &model.StaffUser{ID: s.Next, Login: login, PasswordHash: passwordHash}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

func (s *StaffRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.StaffUser, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *StaffRepositoryStub) GetByID(ctx context.Context, id int64) (*model.StaffUser, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ReportRepositoryStub returns canned reporting aggregates.
type ReportRepositoryStub struct {
	Stats     *model.DashboardStats
	SummaryV  *model.SalesSummary
	Daily     []model.SalesBucket
	Monthly   []model.SalesBucket
	Top       []model.ProductStats
	EmailLogs []model.EmailLog
	Err       error
}

func (s *ReportRepositoryStub) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Stats == nil {
		return &model.DashboardStats{}, nil
	}
	return s.Stats, nil
}

func (s *ReportRepositoryStub) Summary(ctx context.Context, since time.Time) (*model.SalesSummary, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.SummaryV == nil {
		return &model.SalesSummary{}, nil
	}
	copied := *s.SummaryV
	return &copied, nil
}

func (s *ReportRepositoryStub) DailySales(ctx context.Context, days int) ([]model.SalesBucket, error) {
	return s.Daily, s.Err
}

func (s *ReportRepositoryStub) MonthlySales(ctx context.Context, months int) ([]model.SalesBucket, error) {
	return s.Monthly, s.Err
}

func (s *ReportRepositoryStub) TopProducts(ctx context.Context, limit int) ([]model.ProductStats, error) {
	return s.Top, s.Err
}

func (s *ReportRepositoryStub) LogEmail(ctx context.Context, log *model.EmailLog) error {
	if s.Err != nil {
		return s.Err
	}
	s.EmailLogs = append(s.EmailLogs, *log)
	return nil
}

// FinanceRepositoryStub keeps budgeting state in-memory for tests.
type FinanceRepositoryStub struct {
	Categories map[int64]*model.BudgetCategory
	Budgets    map[string]*model.MonthlyBudget
	Expenses   map[int64]*model.Expense
	Capital    []model.CapitalEntry
	Alerts     []model.RestockAlert
	Revenue    decimal.Decimal
	COGS       decimal.Decimal
	Next       int64
	Err        error
}

// NewFinanceRepositoryStub constructs a stub with initialized maps.
func NewFinanceRepositoryStub() *FinanceRepositoryStub {
	return &FinanceRepositoryStub{
		Categories: make(map[int64]*model.BudgetCategory),
		Budgets:    make(map[string]*model.MonthlyBudget),
		Expenses:   make(map[int64]*model.Expense),
		Next:       1,
	}
}

func budgetKey(year, month int) string {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

func (s *FinanceRepositoryStub) nextID() int64 {
	id := s.Next
	s.Next++
	return id
}

func (s *FinanceRepositoryStub) CreateCategory(ctx context.Context, category *model.BudgetCategory) (*model.BudgetCategory, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	copied := *category
	copied.ID = s.nextID()
	s.Categories[copied.ID] = &copied
	result := copied
	return &result, nil
}

func (s *FinanceRepositoryStub) ListCategories(ctx context.Context) ([]model.BudgetCategory, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.BudgetCategory
	for _, c := range s.Categories {
		out = append(out, *c)
	}
	return out, nil
}

func (s *FinanceRepositoryStub) CreateBudget(ctx context.Context, budget *model.MonthlyBudget, allocations []repository.AllocationInput) (*model.MonthlyBudget, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	key := budgetKey(budget.Year, budget.Month)
	if _, exists := s.Budgets[key]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	copied := *budget
	copied.ID = s.nextID()
	for _, a := range allocations {
		alloc := model.BudgetAllocation{
			ID:              s.nextID(),
			BudgetID:        copied.ID,
			CategoryID:      a.CategoryID,
			AllocatedAmount: a.Amount,
		}
		if c, ok := s.Categories[a.CategoryID]; ok {
			alloc.CategoryName = c.Name
		}
		copied.Allocations = append(copied.Allocations, alloc)
	}
	s.Budgets[key] = &copied
	result := copied
	return &result, nil
}

func (s *FinanceRepositoryStub) GetBudget(ctx context.Context, year, month int) (*model.MonthlyBudget, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if budget, ok := s.Budgets[budgetKey(year, month)]; ok {
		copied := *budget
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *FinanceRepositoryStub) findBudgetByID(id int64) *model.MonthlyBudget {
	for _, b := range s.Budgets {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func (s *FinanceRepositoryStub) AddExpense(ctx context.Context, expense *model.Expense) (*model.Expense, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	budget := s.findBudgetByID(expense.BudgetID)
	if budget == nil {
		return nil, domainErrors.ErrNotFound
	}
	copied := *expense
	copied.ID = s.nextID()
	s.Expenses[copied.ID] = &copied
	for i := range budget.Allocations {
		if budget.Allocations[i].CategoryID == copied.CategoryID {
			budget.Allocations[i].SpentAmount = budget.Allocations[i].SpentAmount.Add(copied.Amount)
		}
	}
	result := copied
	return &result, nil
}

func (s *FinanceRepositoryStub) DeleteExpense(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	expense, ok := s.Expenses[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if budget := s.findBudgetByID(expense.BudgetID); budget != nil {
		for i := range budget.Allocations {
			if budget.Allocations[i].CategoryID == expense.CategoryID {
				budget.Allocations[i].SpentAmount = budget.Allocations[i].SpentAmount.Sub(expense.Amount)
			}
		}
	}
	delete(s.Expenses, id)
	return nil
}

func (s *FinanceRepositoryStub) RecentExpenses(ctx context.Context, budgetID int64, limit int) ([]model.Expense, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.Expense
	for _, e := range s.Expenses {
		if e.BudgetID == budgetID {
			out = append(out, *e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *FinanceRepositoryStub) AddCapitalEntry(ctx context.Context, entry *model.CapitalEntry) (*model.CapitalEntry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	copied := *entry
	copied.ID = s.nextID()
	s.Capital = append(s.Capital, copied)
	result := copied
	return &result, nil
}

func (s *FinanceRepositoryStub) CapitalTotals(ctx context.Context, budgetID int64) (decimal.Decimal, decimal.Decimal, error) {
	if s.Err != nil {
		return decimal.Zero, decimal.Zero, s.Err
	}
	in, out := decimal.Zero, decimal.Zero
	for _, e := range s.Capital {
		if e.BudgetID != budgetID {
			continue
		}
		if e.EntryType == model.CapitalIn {
			in = in.Add(e.Amount)
		} else {
			out = out.Add(e.Amount)
		}
	}
	return in, out, nil
}

func (s *FinanceRepositoryStub) EnsureRestockAlert(ctx context.Context, alert *model.RestockAlert) error {
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.Alerts {
		if existing.ProductID == alert.ProductID && !existing.Dismissed {
			return nil
		}
	}
	copied := *alert
	copied.ID = s.nextID()
	s.Alerts = append(s.Alerts, copied)
	return nil
}

func (s *FinanceRepositoryStub) ActiveRestockAlerts(ctx context.Context) ([]model.RestockAlert, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var out []model.RestockAlert
	for _, a := range s.Alerts {
		if !a.Dismissed {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *FinanceRepositoryStub) DismissRestockAlert(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	for i := range s.Alerts {
		if s.Alerts[i].ID == id {
			s.Alerts[i].Dismissed = true
			now := time.Now()
			s.Alerts[i].DismissedAt = &now
			return nil
		}
	}
	return domainErrors.ErrNotFound
}

func (s *FinanceRepositoryStub) MonthlyRevenue(ctx context.Context, year, month int) (decimal.Decimal, error) {
	return s.Revenue, s.Err
}

func (s *FinanceRepositoryStub) MonthlyCOGS(ctx context.Context, year, month int) (decimal.Decimal, error) {
	return s.COGS, s.Err
}
