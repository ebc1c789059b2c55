package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/test"
	"github.com/kahenya/duka/internal/usecase"
)

func TestSummaryPeriods(t *testing.T) {
	reports := &test.ReportRepositoryStub{SummaryV: &model.SalesSummary{
		TotalSales:  decimal.NewFromInt(12000),
		TotalOrders: 4,
	}}
	uc := usecase.NewReportUseCase(reports)
	now := time.Date(2026, 8, 15, 13, 0, 0, 0, time.UTC)
	uc.SetNow(func() time.Time { return now })
	ctx := context.Background()

	for _, period := range []string{usecase.PeriodAll, usecase.PeriodToday, usecase.PeriodWeek, usecase.PeriodMonth} {
		summary, err := uc.Summary(ctx, period)
		if err != nil {
			t.Fatalf("Summary(%q): %v", period, err)
		}
		if summary.Period != period {
			t.Errorf("expected period %q echoed, got %q", period, summary.Period)
		}
	}

	summary, err := uc.Summary(ctx, "")
	if err != nil {
		t.Fatalf("Summary(default): %v", err)
	}
	if summary.Period != usecase.PeriodAll {
		t.Errorf("empty period must default to all, got %q", summary.Period)
	}

	if _, err := uc.Summary(ctx, "fortnight"); !errors.Is(err, domainErrors.ErrInvalidPeriod) {
		t.Errorf("unknown period: got %v, want ErrInvalidPeriod", err)
	}
}

func TestSeriesWindowClamping(t *testing.T) {
	reports := &test.ReportRepositoryStub{
		Daily:   []model.SalesBucket{{Bucket: "2026-08-15"}},
		Monthly: []model.SalesBucket{{Bucket: "2026-08"}},
		Top:     []model.ProductStats{{ProductID: 1}},
	}
	uc := usecase.NewReportUseCase(reports)
	ctx := context.Background()

	if _, err := uc.DailySales(ctx, -5); err != nil {
		t.Errorf("DailySales with bad window: %v", err)
	}
	if _, err := uc.MonthlySales(ctx, 100); err != nil {
		t.Errorf("MonthlySales with bad window: %v", err)
	}
	if _, err := uc.TopProducts(ctx, 0); err != nil {
		t.Errorf("TopProducts with bad limit: %v", err)
	}
}
