package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/kahenya/duka/internal/adapter/daraja"
	"github.com/kahenya/duka/internal/adapter/mailer"
	"github.com/kahenya/duka/internal/app"
	"github.com/kahenya/duka/internal/config"
	"github.com/kahenya/duka/internal/domain/repository"
	"github.com/kahenya/duka/internal/storage/postgres"
	"github.com/kahenya/duka/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:       ":0",
		DatabaseURI:      "postgres://stub",
		RedisAddr:        "localhost:6379",
		GatewayBaseURL:   "http://localhost",
		TokenSecret:      "secret",
		PaymentExpiry:    time.Minute,
		ReaperInterval:   time.Millisecond,
		ReaperBatchSize:  1,
		ReaperWorkers:    1,
		ShutdownTimeout:  time.Millisecond,
		RestockThreshold: 1,
		StoreName:        "Duka",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	products := test.NewProductRepositoryStub()
	orders := test.NewOrderRepositoryStub()
	payments := test.NewPaymentRepositoryStub(orders)
	sessions := test.NewSessionRepositoryStub()
	staff := test.NewStaffRepositoryStub()
	finance := test.NewFinanceRepositoryStub()

	var facade *app.StoreFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.ProductRepository(products)),
			fx.Replace(repository.OrderRepository(orders)),
			fx.Replace(repository.PaymentRepository(payments)),
			fx.Replace(repository.SessionRepository(sessions)),
			fx.Replace(repository.SettingsRepository(&test.SettingsRepositoryStub{})),
			fx.Replace(repository.StaffRepository(staff)),
			fx.Replace(repository.ReportRepository(&test.ReportRepositoryStub{})),
			fx.Replace(repository.FinanceRepository(finance)),
			fx.Replace(daraja.Client(&test.GatewayStub{})),
			fx.Replace(mailer.Notifier(&test.NotifierStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected store facade instance")
	}
}
