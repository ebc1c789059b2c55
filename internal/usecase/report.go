package usecase

import (
	"context"
	"time"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// Reporting periods accepted by Summary.
const (
	PeriodAll   = "all"
	PeriodToday = "today"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// ReportUseCase serves the admin reporting views.
type ReportUseCase struct {
	reports repository.ReportRepository
	now     func() time.Time
}

// NewReportUseCase constructs ReportUseCase.
func NewReportUseCase(reports repository.ReportRepository) *ReportUseCase {
	return &ReportUseCase{reports: reports, now: time.Now}
}

// Dashboard returns the admin landing page aggregates.
func (u *ReportUseCase) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	return u.reports.Dashboard(ctx)
}

// Summary aggregates sales over a named period.
func (u *ReportUseCase) Summary(ctx context.Context, period string) (*model.SalesSummary, error) {
	if period == "" {
		period = PeriodAll
	}

	var since time.Time
	now := u.now()
	switch period {
	case PeriodAll:
	case PeriodToday:
		since = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case PeriodWeek:
		since = now.AddDate(0, 0, -7)
	case PeriodMonth:
		since = now.AddDate(0, -1, 0)
	default:
		return nil, domainErrors.ErrInvalidPeriod
	}

	summary, err := u.reports.Summary(ctx, since)
	if err != nil {
		return nil, err
	}
	summary.Period = period
	return summary, nil
}

// DailySales returns the per-day sales series for the trailing window.
func (u *ReportUseCase) DailySales(ctx context.Context, days int) ([]model.SalesBucket, error) {
	if days <= 0 || days > 90 {
		days = 30
	}
	return u.reports.DailySales(ctx, days)
}

// MonthlySales returns the per-month sales series for the trailing window.
func (u *ReportUseCase) MonthlySales(ctx context.Context, months int) ([]model.SalesBucket, error) {
	if months <= 0 || months > 24 {
		months = 12
	}
	return u.reports.MonthlySales(ctx, months)
}

// TopProducts returns the best sellers by units sold.
func (u *ReportUseCase) TopProducts(ctx context.Context, limit int) ([]model.ProductStats, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return u.reports.TopProducts(ctx, limit)
}
