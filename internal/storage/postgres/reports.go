package postgres

import (
	"context"
	"time"

	"github.com/kahenya/duka/internal/domain/model"
)

type reportRepository struct {
	storage *Storage
}

func (r *reportRepository) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	const query = `SELECT
                       COALESCE((SELECT SUM(total_amount) FROM sales_records), 0),
                       (SELECT COUNT(*) FROM orders),
                       COALESCE((SELECT AVG(total_amount) FROM sales_records), 0),
                       (SELECT COUNT(*) FROM products)`
	var stats model.DashboardStats
	err := r.storage.pool.QueryRow(ctx, query).Scan(
		&stats.TotalRevenue, &stats.TotalOrders, &stats.AverageOrderValue, &stats.TotalProducts)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *reportRepository) Summary(ctx context.Context, since time.Time) (*model.SalesSummary, error) {
	const query = `SELECT COALESCE(SUM(total_amount), 0), COUNT(*), COALESCE(SUM(total_items), 0),
                          COALESCE(AVG(total_amount), 0)
                   FROM sales_records WHERE sale_date >= $1`
	var summary model.SalesSummary
	err := r.storage.pool.QueryRow(ctx, query, since).Scan(
		&summary.TotalSales, &summary.TotalOrders, &summary.TotalItems, &summary.AverageOrderValue)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepository) DailySales(ctx context.Context, days int) ([]model.SalesBucket, error) {
	const query = `SELECT to_char(date_trunc('day', sale_date), 'YYYY-MM-DD'),
                          SUM(total_amount), COUNT(*)
                   FROM sales_records
                   WHERE sale_date >= NOW() - make_interval(days => $1)
                   GROUP BY 1 ORDER BY 1`
	return r.salesSeries(ctx, query, days)
}

func (r *reportRepository) MonthlySales(ctx context.Context, months int) ([]model.SalesBucket, error) {
	const query = `SELECT to_char(date_trunc('month', sale_date), 'YYYY-MM'),
                          SUM(total_amount), COUNT(*)
                   FROM sales_records
                   WHERE sale_date >= NOW() - make_interval(months => $1)
                   GROUP BY 1 ORDER BY 1`
	return r.salesSeries(ctx, query, months)
}

func (r *reportRepository) salesSeries(ctx context.Context, query string, arg int) ([]model.SalesBucket, error) {
	rows, err := r.storage.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.SalesBucket
	for rows.Next() {
		var b model.SalesBucket
		if err := rows.Scan(&b.Bucket, &b.TotalSales, &b.OrderCount); err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reportRepository) TopProducts(ctx context.Context, limit int) ([]model.ProductStats, error) {
	const query = `SELECT s.product_id, p.name, s.total_sold, s.total_revenue, s.last_sold_at
                   FROM product_stats s
                   JOIN products p ON p.id = s.product_id
                   ORDER BY s.total_revenue DESC
                   LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ProductStats
	for rows.Next() {
		var s model.ProductStats
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.TotalSold, &s.TotalRevenue, &s.LastSoldAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reportRepository) LogEmail(ctx context.Context, log *model.EmailLog) error {
	const query = `INSERT INTO email_log (recipient, subject, status) VALUES ($1, $2, $3)`
	_, err := r.storage.pool.Exec(ctx, query, log.Recipient, log.Subject, log.Status)
	return err
}
