package mailer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kahenya/duka/internal/domain/model"
)

type fakeSender struct {
	to      []string
	subject []string
	body    []string
	err     error
}

func (f *fakeSender) Send(to, subject, body string) error {
	f.to = append(f.to, to)
	f.subject = append(f.subject, subject)
	f.body = append(f.body, body)
	return f.err
}

type fakeReports struct {
	logs []model.EmailLog
}

func (f *fakeReports) Dashboard(context.Context) (*model.DashboardStats, error) { return nil, nil }
func (f *fakeReports) Summary(context.Context, time.Time) (*model.SalesSummary, error) {
	return nil, nil
}
func (f *fakeReports) DailySales(context.Context, int) ([]model.SalesBucket, error)   { return nil, nil }
func (f *fakeReports) MonthlySales(context.Context, int) ([]model.SalesBucket, error) { return nil, nil }
func (f *fakeReports) TopProducts(context.Context, int) ([]model.ProductStats, error) {
	return nil, nil
}
func (f *fakeReports) LogEmail(_ context.Context, log *model.EmailLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleOrder() *model.Order {
	return &model.Order{
		ID:              7,
		CustomerName:    "Atieno",
		Email:           "atieno@example.com",
		DeliveryAddress: "Moi Avenue",
		Status:          model.OrderStatusPending,
		Lines: []model.OrderLine{
			{Name: "Classic Hoodie", Size: "L", Quantity: 2, UnitPrice: decimal.NewFromInt(2500)},
		},
	}
}

func TestOrderConfirmationComposesAndLogs(t *testing.T) {
	sender := &fakeSender{}
	reports := &fakeReports{}
	n := NewEmailNotifier(sender, reports, discardLogger(), "Duka")

	settings := &model.StoreSettings{
		PickupLocation: "CBD Shop",
		PickupDate:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		PickupTime:     "10:00",
		StorePhone:     "0712000000",
	}
	n.OrderConfirmation(context.Background(), sampleOrder(), settings)

	if len(sender.to) != 1 || sender.to[0] != "atieno@example.com" {
		t.Fatalf("expected one send to customer, got %v", sender.to)
	}
	if !strings.Contains(sender.subject[0], "order #7") {
		t.Errorf("unexpected subject %q", sender.subject[0])
	}
	for _, want := range []string{"Classic Hoodie", "5000.00", "CBD Shop", "0712000000"} {
		if !strings.Contains(sender.body[0], want) {
			t.Errorf("body missing %q:\n%s", want, sender.body[0])
		}
	}
	if len(reports.logs) != 1 || reports.logs[0].Status != model.EmailStatusSent {
		t.Fatalf("expected one sent audit row, got %+v", reports.logs)
	}
}

func TestOrderConfirmationSkipsWithoutEmail(t *testing.T) {
	sender := &fakeSender{}
	reports := &fakeReports{}
	n := NewEmailNotifier(sender, reports, discardLogger(), "Duka")

	order := sampleOrder()
	order.Email = ""
	n.OrderConfirmation(context.Background(), order, nil)

	if len(sender.to) != 0 {
		t.Errorf("expected no sends, got %v", sender.to)
	}
	if len(reports.logs) != 0 {
		t.Errorf("expected no audit rows, got %v", reports.logs)
	}
}

func TestStatusChangeRecordsFailure(t *testing.T) {
	sender := &fakeSender{err: errors.New("connection refused")}
	reports := &fakeReports{}
	n := NewEmailNotifier(sender, reports, discardLogger(), "Duka")

	order := sampleOrder()
	order.Status = model.OrderStatusDispatched
	n.OrderStatusChanged(context.Background(), order, model.OrderStatusProcessing)

	if len(reports.logs) != 1 {
		t.Fatalf("expected one audit row, got %d", len(reports.logs))
	}
	if reports.logs[0].Status != model.EmailStatusFailed {
		t.Errorf("expected failed status, got %q", reports.logs[0].Status)
	}
	if !strings.Contains(sender.body[0], "Moi Avenue") {
		t.Errorf("dispatched body should mention delivery address:\n%s", sender.body[0])
	}
}

func TestStatusChangeSkipsNoop(t *testing.T) {
	sender := &fakeSender{}
	n := NewEmailNotifier(sender, &fakeReports{}, discardLogger(), "Duka")

	order := sampleOrder()
	n.OrderStatusChanged(context.Background(), order, order.Status)

	if len(sender.to) != 0 {
		t.Errorf("expected no sends for unchanged status, got %v", sender.to)
	}
}
