package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
	"github.com/kahenya/duka/internal/server/http/dto"
	"github.com/kahenya/duka/internal/server/http/middleware"
	testhelpers "github.com/kahenya/duka/internal/test"
	"github.com/kahenya/duka/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// routePattern derives a gin route pattern from a request path: the query
// string is dropped and numeric segments become the ":id" parameter, matching
// the patterns registered by the real router.
func routePattern(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == "" {
			continue
		}
		if _, err := strconv.Atoi(segment); err == nil {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, routePattern(path), func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func withSession(sessionID string) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.SessionIDContextKey, sessionID)
	}
}

func TestCurrentSessionID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentSessionID(c); got != "" {
		t.Fatalf("expected empty session id, got %q", got)
	}

	c.Set(middleware.SessionIDContextKey, "visitor-1")
	if got := CurrentSessionID(c); got != "visitor-1" {
		t.Fatalf("expected visitor-1, got %q", got)
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "admin", Password: "secret"})
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(testhelpers.AuthFacadeStub{}).Register, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if resp.Header().Get("Authorization") == "" {
		t.Fatalf("expected auth header to be set")
	}
}

func TestAuthHandlerRegisterConflict(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "admin", Password: "secret"})
	stub := testhelpers.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrAlreadyExists
	}}
	resp := performRequest(t, http.MethodPost, "/register", NewAuthHandler(stub).Register, nil, body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestAuthHandlerLoginUnauthorized(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "admin", Password: "wrong"})
	stub := testhelpers.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}}
	resp := performRequest(t, http.MethodPost, "/login", NewAuthHandler(stub).Login, nil, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestCatalogHandlerList(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/products", NewCatalogHandler(testhelpers.CatalogFacadeStub{}).List, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var products []dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &products); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Classic Hoodie" {
		t.Fatalf("unexpected products: %+v", products)
	}
	if len(products[0].Sizes) != 3 {
		t.Fatalf("expected parsed sizes, got %v", products[0].Sizes)
	}
}

func TestCatalogHandlerListUnknownCategory(t *testing.T) {
	stub := testhelpers.CatalogFacadeStub{ProductsFn: func(context.Context, repository.ProductFilter) ([]model.Product, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/products", NewCatalogHandler(stub).List, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCatalogHandlerGetNotFound(t *testing.T) {
	stub := testhelpers.CatalogFacadeStub{ProductFn: func(context.Context, int64) (*model.Product, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/products/9", NewCatalogHandler(stub).Get, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCatalogHandlerCreateInvalid(t *testing.T) {
	stub := testhelpers.CatalogFacadeStub{CreateFn: func(context.Context, *model.Product) (*model.Product, error) {
		return nil, domainErrors.ErrInvalidProduct
	}}
	body, _ := json.Marshal(dto.ProductRequest{Name: ""})
	resp := performRequest(t, http.MethodPost, "/products", NewCatalogHandler(stub).Create, nil, body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestCartHandlerAdd(t *testing.T) {
	var gotSession string
	var gotProduct int64
	stub := testhelpers.CartFacadeStub{AddFn: func(ctx context.Context, sessionID string, productID int64, size string, qty int) (*model.Cart, error) {
		gotSession = sessionID
		gotProduct = productID
		return testhelpers.SampleCart(), nil
	}}
	body, _ := json.Marshal(dto.AddToCartRequest{ProductID: 1, Size: "M", Quantity: 2})
	resp := performRequest(t, http.MethodPost, "/cart", NewCartHandler(stub).Add, withSession("visitor-1"), body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotSession != "visitor-1" || gotProduct != 1 {
		t.Fatalf("unexpected call: session=%q product=%d", gotSession, gotProduct)
	}
	var cart dto.CartResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !cart.Total.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected total 5000, got %s", cart.Total)
	}
}

func TestCartHandlerAddInsufficientStock(t *testing.T) {
	stub := testhelpers.CartFacadeStub{AddFn: func(context.Context, string, int64, string, int) (*model.Cart, error) {
		return nil, domainErrors.ErrInsufficientStock
	}}
	body, _ := json.Marshal(dto.AddToCartRequest{ProductID: 1, Size: "M", Quantity: 99})
	resp := performRequest(t, http.MethodPost, "/cart", NewCartHandler(stub).Add, withSession("visitor-1"), body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestCheckoutHandlerPlaceCashOrder(t *testing.T) {
	var gotCustomer usecase.CustomerInfo
	stub := testhelpers.CheckoutFacadeStub{PlaceFn: func(ctx context.Context, sessionID string, customer usecase.CustomerInfo) (*model.Order, error) {
		gotCustomer = customer
		return testhelpers.SampleOrder(), nil
	}}
	body, _ := json.Marshal(dto.CheckoutRequest{Name: "Atieno", PhoneNumber: "0712345678", DeliveryAddress: "Moi Avenue"})
	resp := performRequest(t, http.MethodPost, "/checkout", NewCheckoutHandler(stub).PlaceCashOrder, withSession("visitor-1"), body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if gotCustomer.Name != "Atieno" {
		t.Fatalf("customer not passed through: %+v", gotCustomer)
	}
	var placed dto.TrackingResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &placed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if placed.Order.ID != 7 || placed.Pickup == nil {
		t.Fatalf("expected order with pickup info, got %+v", placed)
	}
}

func TestCheckoutHandlerDeletedProduct(t *testing.T) {
	stub := testhelpers.CheckoutFacadeStub{PlaceFn: func(context.Context, string, usecase.CustomerInfo) (*model.Order, error) {
		return nil, domainErrors.ErrNotFound
	}}
	body, _ := json.Marshal(dto.CheckoutRequest{Name: "Atieno", PhoneNumber: "0712345678", DeliveryAddress: "Moi Avenue"})
	resp := performRequest(t, http.MethodPost, "/checkout", NewCheckoutHandler(stub).PlaceCashOrder, withSession("visitor-1"), body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestCheckoutHandlerEmptyCart(t *testing.T) {
	stub := testhelpers.CheckoutFacadeStub{PlaceFn: func(context.Context, string, usecase.CustomerInfo) (*model.Order, error) {
		return nil, domainErrors.ErrEmptyCart
	}}
	body, _ := json.Marshal(dto.CheckoutRequest{Name: "Atieno", PhoneNumber: "0712345678", DeliveryAddress: "Moi Avenue"})
	resp := performRequest(t, http.MethodPost, "/checkout", NewCheckoutHandler(stub).PlaceCashOrder, withSession("visitor-1"), body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCheckoutHandlerInvalidPhone(t *testing.T) {
	stub := testhelpers.CheckoutFacadeStub{PlaceFn: func(context.Context, string, usecase.CustomerInfo) (*model.Order, error) {
		return nil, domainErrors.ErrInvalidPhoneNumber
	}}
	body, _ := json.Marshal(dto.CheckoutRequest{Name: "Atieno", PhoneNumber: "12345", DeliveryAddress: "Moi Avenue"})
	resp := performRequest(t, http.MethodPost, "/checkout", NewCheckoutHandler(stub).PlaceCashOrder, withSession("visitor-1"), body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestPaymentHandlerInitiate(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/payments/initiate", NewPaymentHandler(testhelpers.PaymentFacadeStub{}).Initiate, withSession("visitor-1"), mustCheckoutBody(t))
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.Code)
	}
	var initiated dto.InitiatePaymentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &initiated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if initiated.CheckoutRequestID != "ws_CO_1" {
		t.Fatalf("unexpected response: %+v", initiated)
	}
}

func TestPaymentHandlerInitiateGatewayDown(t *testing.T) {
	stub := testhelpers.PaymentFacadeStub{InitiateFn: func(context.Context, string, usecase.CustomerInfo) (string, error) {
		return "", domainErrors.ErrGatewayUnavailable
	}}
	resp := performRequest(t, http.MethodPost, "/payments/initiate", NewPaymentHandler(stub).Initiate, withSession("visitor-1"), mustCheckoutBody(t))
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestPaymentHandlerCallbackAlwaysAcks(t *testing.T) {
	var received []model.PaymentResult
	stub := testhelpers.PaymentFacadeStub{CallbackFn: func(ctx context.Context, result model.PaymentResult) {
		received = append(received, result)
	}}
	handler := NewPaymentHandler(stub)

	payload := []byte(`{"Body":{"stkCallback":{"CheckoutRequestID":"ws_CO_1","ResultCode":0,"ResultDesc":"Success","CallbackMetadata":{"Item":[{"Name":"Amount","Value":5000}]}}}}`)
	resp := performRequest(t, http.MethodPost, "/payments/callback", handler.Callback, nil, payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var ack dto.CallbackAck
	if err := json.Unmarshal(resp.Body.Bytes(), &ack); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ack.ResultCode != 0 || ack.ResultDesc != "Accepted" {
		t.Fatalf("unexpected ack: %+v", ack)
	}
	if len(received) != 1 || received[0].Status != model.PaymentStatusSuccess {
		t.Fatalf("expected one success result, got %+v", received)
	}

	// Malformed payloads are still acknowledged and never reach the facade.
	resp = performRequest(t, http.MethodPost, "/payments/callback", handler.Callback, nil, []byte("not json"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for malformed payload, got %d", resp.Code)
	}
	if len(received) != 1 {
		t.Fatalf("malformed payload must be dropped, got %+v", received)
	}
}

func TestPaymentHandlerStatus(t *testing.T) {
	stub := testhelpers.PaymentFacadeStub{PollFn: func(context.Context, string) (*usecase.PollStatus, error) {
		return &usecase.PollStatus{Status: model.PaymentStatusSuccess, Order: testhelpers.SampleOrder()}, nil
	}}
	resp := performRequest(t, http.MethodGet, "/payments/status", NewPaymentHandler(stub).Status, withSession("visitor-1"), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var status dto.PaymentStatusResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Status != string(model.PaymentStatusSuccess) || status.Order == nil {
		t.Fatalf("expected success with order, got %+v", status)
	}
}

func TestPaymentHandlerStatusNoPending(t *testing.T) {
	stub := testhelpers.PaymentFacadeStub{PollFn: func(context.Context, string) (*usecase.PollStatus, error) {
		return nil, domainErrors.ErrNoPendingPayment
	}}
	resp := performRequest(t, http.MethodGet, "/payments/status", NewPaymentHandler(stub).Status, withSession("visitor-1"), nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestOrderHandlerTrackNotFound(t *testing.T) {
	stub := testhelpers.OrderFacadeStub{TrackFn: func(context.Context, int64, string) (*usecase.TrackingInfo, error) {
		return nil, domainErrors.ErrNotFound
	}}
	resp := performRequest(t, http.MethodGet, "/orders/7/track", NewOrderHandler(stub).Track, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestOrderHandlerUpdateStatus(t *testing.T) {
	var gotStatus model.OrderStatus
	stub := testhelpers.OrderFacadeStub{UpdateStatusFn: func(ctx context.Context, orderID int64, status model.OrderStatus) (*model.Order, error) {
		gotStatus = status
		order := testhelpers.SampleOrder()
		order.Status = status
		return order, nil
	}}
	body, _ := json.Marshal(dto.UpdateOrderStatusRequest{Status: "dispatched"})
	resp := performRequest(t, http.MethodPatch, "/orders/7/status", NewOrderHandler(stub).UpdateStatus, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotStatus != model.OrderStatusDispatched {
		t.Fatalf("expected dispatched, got %q", gotStatus)
	}
}

func TestOrderHandlerUpdateStatusUnknown(t *testing.T) {
	stub := testhelpers.OrderFacadeStub{UpdateStatusFn: func(context.Context, int64, model.OrderStatus) (*model.Order, error) {
		return nil, domainErrors.ErrInvalidStatus
	}}
	body, _ := json.Marshal(dto.UpdateOrderStatusRequest{Status: "shipped"})
	resp := performRequest(t, http.MethodPatch, "/orders/7/status", NewOrderHandler(stub).UpdateStatus, nil, body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestReportHandlerSummaryInvalidPeriod(t *testing.T) {
	stub := testhelpers.ReportFacadeStub{SummaryFn: func(context.Context, string) (*model.SalesSummary, error) {
		return nil, domainErrors.ErrInvalidPeriod
	}}
	resp := performRequest(t, http.MethodGet, "/reports/summary?period=year", NewReportHandler(stub).Summary, nil, nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestSettingsHandlerUpdate(t *testing.T) {
	var gotLocation string
	stub := testhelpers.SettingsFacadeStub{UpdateFn: func(ctx context.Context, settings *model.StoreSettings) error {
		gotLocation = settings.PickupLocation
		return nil
	}}
	body, _ := json.Marshal(dto.SettingsRequest{
		PickupLocation: "New Market",
		PickupDate:     "2026-09-12",
		PickupTime:     "10:00-16:00",
	})
	resp := performRequest(t, http.MethodPut, "/settings", NewSettingsHandler(stub).Update, nil, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotLocation != "New Market" {
		t.Fatalf("expected settings to reach facade, got %q", gotLocation)
	}
}

func TestSettingsHandlerUpdateBadDate(t *testing.T) {
	body, _ := json.Marshal(dto.SettingsRequest{PickupDate: "12/09/2026"})
	resp := performRequest(t, http.MethodPut, "/settings", NewSettingsHandler(testhelpers.SettingsFacadeStub{}).Update, nil, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestFinanceHandlerCreateBudgetConflict(t *testing.T) {
	stub := testhelpers.FinanceFacadeStub{CreateBudgetFn: func(context.Context, *model.MonthlyBudget, []repository.AllocationInput) (*model.MonthlyBudget, error) {
		return nil, domainErrors.ErrAlreadyExists
	}}
	body, _ := json.Marshal(dto.BudgetRequest{Year: 2026, Month: 9, TotalCapital: decimal.NewFromInt(15000)})
	resp := performRequest(t, http.MethodPost, "/budgets", NewFinanceHandler(stub).CreateBudget, nil, body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestFinanceHandlerAddExpenseBadDate(t *testing.T) {
	body, _ := json.Marshal(dto.ExpenseRequest{BudgetID: 1, CategoryID: 1, Amount: decimal.NewFromInt(500), Date: "yesterday"})
	resp := performRequest(t, http.MethodPost, "/expenses", NewFinanceHandler(testhelpers.FinanceFacadeStub{}).AddExpense, nil, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestFinanceHandlerOverview(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/overview?year=2026&month=9", NewFinanceHandler(testhelpers.FinanceFacadeStub{}).Overview, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var overview dto.FinanceOverviewResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if overview.Year != 2026 || overview.Month != 9 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
	if !overview.GrossProfit.Equal(decimal.NewFromInt(9000)) {
		t.Fatalf("expected gross profit 9000, got %s", overview.GrossProfit)
	}
}

func mustCheckoutBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(dto.CheckoutRequest{Name: "Atieno", PhoneNumber: "0712345678", DeliveryAddress: "Moi Avenue"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return body
}
