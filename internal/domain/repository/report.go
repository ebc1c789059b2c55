package repository

import (
	"context"
	"time"

	"github.com/kahenya/duka/internal/domain/model"
)

// ReportRepository serves the admin reporting aggregates.
type ReportRepository interface {
	Dashboard(ctx context.Context) (*model.DashboardStats, error)
	// Summary aggregates sales records since the given time; a zero time
	// means all records.
	Summary(ctx context.Context, since time.Time) (*model.SalesSummary, error)
	DailySales(ctx context.Context, days int) ([]model.SalesBucket, error)
	MonthlySales(ctx context.Context, months int) ([]model.SalesBucket, error)
	TopProducts(ctx context.Context, limit int) ([]model.ProductStats, error)
	LogEmail(ctx context.Context, log *model.EmailLog) error
}
