package usecase

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/kahenya/duka/internal/adapter/daraja"
	"github.com/kahenya/duka/internal/adapter/mailer"
	"github.com/kahenya/duka/internal/config"
	"github.com/kahenya/duka/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		NewCatalogUseCase,
		NewCartUseCase,
		NewSettingsUseCase,
		NewOrderUseCase,
		NewReportUseCase,
		NewStaffUseCase,
		newCheckoutUseCase,
		newPaymentUseCase,
		newFinanceUseCase,
	),
	fx.Invoke(warmSettings),
)

func newCheckoutUseCase(
	cfg *config.Config,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	finance repository.FinanceRepository,
	sessions repository.SessionRepository,
	settings *SettingsUseCase,
	notifier mailer.Notifier,
	logger *slog.Logger,
) *CheckoutUseCase {
	return NewCheckoutUseCase(orders, products, finance, sessions, settings, notifier, logger, cfg.RestockThreshold)
}

func newPaymentUseCase(
	cfg *config.Config,
	payments repository.PaymentRepository,
	products repository.ProductRepository,
	finance repository.FinanceRepository,
	sessions repository.SessionRepository,
	gateway daraja.Client,
	settings *SettingsUseCase,
	notifier mailer.Notifier,
	logger *slog.Logger,
) *PaymentUseCase {
	return NewPaymentUseCase(payments, products, finance, sessions, gateway, settings, notifier, logger, cfg.PaymentExpiry, cfg.RestockThreshold)
}

func newFinanceUseCase(
	cfg *config.Config,
	finance repository.FinanceRepository,
	products repository.ProductRepository,
	logger *slog.Logger,
) *FinanceUseCase {
	return NewFinanceUseCase(finance, products, logger, cfg.RestockThreshold)
}

func warmSettings(lc fx.Lifecycle, settings *SettingsUseCase) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return settings.Warm(ctx)
		},
	})
}
