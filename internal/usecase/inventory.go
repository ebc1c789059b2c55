package usecase

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// restockBatchSize is the assumed reorder quantity when estimating restock cost.
var restockBatchSize = decimal.NewFromInt(10)

// syncRestockAlerts raises alerts for ready-stock products at or below the
// threshold. Failures are logged; alerting never blocks an order flow.
func syncRestockAlerts(ctx context.Context, products repository.ProductRepository, finance repository.FinanceRepository, threshold int, logger *slog.Logger) {
	low, err := products.LowReadyStock(ctx, threshold)
	if err != nil {
		logger.Error("scan low stock", slog.Any("error", err))
		return
	}

	for _, p := range low {
		alert := &model.RestockAlert{
			ProductID:   p.ID,
			ProductName: p.Name,
			QtyAtAlert:  p.StockQuantity,
		}
		if p.PurchaseCost != nil {
			cost := p.PurchaseCost.Mul(restockBatchSize)
			alert.EstimatedRestockCost = &cost
		}
		if err := finance.EnsureRestockAlert(ctx, alert); err != nil {
			logger.Error("raise restock alert", slog.Int64("product_id", p.ID), slog.Any("error", err))
		}
	}
}
