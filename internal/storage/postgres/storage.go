package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kahenya/duka/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; tests swap in
// a mock implementation.
type pgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Payments() repository.PaymentRepository {
	return &paymentRepository{storage: s}
}

func (s *Storage) Settings() repository.SettingsRepository {
	return &settingsRepository{storage: s}
}

func (s *Storage) Reports() repository.ReportRepository {
	return &reportRepository{storage: s}
}

func (s *Storage) Finance() repository.FinanceRepository {
	return &financeRepository{storage: s}
}

func (s *Storage) Staff() repository.StaffRepository {
	return &staffRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS staff_users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS store_settings (
            id SMALLINT PRIMARY KEY CHECK (id = 1),
            pickup_location TEXT NOT NULL,
            pickup_date DATE NOT NULL,
            pickup_time TEXT NOT NULL,
            pickup_days_info TEXT NOT NULL,
            store_phone TEXT NOT NULL,
            store_email TEXT NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            price NUMERIC(10,2) NOT NULL,
            category TEXT NOT NULL,
            available_sizes TEXT NOT NULL DEFAULT '',
            stock_type TEXT NOT NULL DEFAULT 'ready',
            stock_quantity INT NOT NULL DEFAULT 0 CHECK (stock_quantity >= 0),
            purchase_cost NUMERIC(10,2),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            customer_name TEXT NOT NULL,
            phone_number TEXT NOT NULL,
            email TEXT NOT NULL,
            delivery_address TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            name TEXT NOT NULL,
            size TEXT NOT NULL DEFAULT '',
            quantity INT NOT NULL,
            unit_price NUMERIC(10,2) NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS payment_attempts (
            id SERIAL PRIMARY KEY,
            checkout_request_id TEXT UNIQUE NOT NULL,
            phone_number TEXT NOT NULL,
            amount NUMERIC(10,2) NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            receipt_code TEXT NOT NULL DEFAULT '',
            result_description TEXT NOT NULL DEFAULT '',
            session_id TEXT NOT NULL,
            order_id BIGINT REFERENCES orders(id),
            settled_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS sales_records (
            id SERIAL PRIMARY KEY,
            order_id BIGINT UNIQUE NOT NULL REFERENCES orders(id),
            total_items INT NOT NULL,
            total_amount NUMERIC(10,2) NOT NULL,
            profit_estimate NUMERIC(10,2) NOT NULL DEFAULT 0,
            sale_date TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS product_stats (
            product_id BIGINT PRIMARY KEY REFERENCES products(id),
            total_sold INT NOT NULL DEFAULT 0,
            total_revenue NUMERIC(12,2) NOT NULL DEFAULT 0,
            last_sold_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS email_log (
            id SERIAL PRIMARY KEY,
            recipient TEXT NOT NULL,
            subject TEXT NOT NULL,
            status TEXT NOT NULL,
            sent_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS budget_categories (
            id SERIAL PRIMARY KEY,
            name TEXT UNIQUE NOT NULL,
            icon TEXT NOT NULL DEFAULT '',
            color TEXT NOT NULL DEFAULT '#c9a84c',
            is_stock_category BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS monthly_budgets (
            id SERIAL PRIMARY KEY,
            year INT NOT NULL,
            month INT NOT NULL CHECK (month BETWEEN 1 AND 12),
            total_capital NUMERIC(12,2) NOT NULL,
            notes TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            UNIQUE (year, month)
        )`,
		`CREATE TABLE IF NOT EXISTS budget_allocations (
            id SERIAL PRIMARY KEY,
            budget_id BIGINT NOT NULL REFERENCES monthly_budgets(id),
            category_id BIGINT NOT NULL REFERENCES budget_categories(id),
            allocated_amount NUMERIC(12,2) NOT NULL,
            spent_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
            UNIQUE (budget_id, category_id)
        )`,
		`CREATE TABLE IF NOT EXISTS expenses (
            id SERIAL PRIMARY KEY,
            budget_id BIGINT NOT NULL REFERENCES monthly_budgets(id),
            category_id BIGINT NOT NULL REFERENCES budget_categories(id),
            amount NUMERIC(12,2) NOT NULL,
            description TEXT NOT NULL,
            date DATE NOT NULL DEFAULT CURRENT_DATE,
            receipt_note TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS capital_entries (
            id SERIAL PRIMARY KEY,
            budget_id BIGINT NOT NULL REFERENCES monthly_budgets(id),
            entry_type TEXT NOT NULL,
            amount NUMERIC(12,2) NOT NULL,
            description TEXT NOT NULL,
            date DATE NOT NULL DEFAULT CURRENT_DATE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS restock_alerts (
            id SERIAL PRIMARY KEY,
            product_id BIGINT NOT NULL REFERENCES products(id),
            qty_at_alert INT NOT NULL,
            estimated_restock_cost NUMERIC(12,2),
            is_dismissed BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            dismissed_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_payment_attempts_pending ON payment_attempts(status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sales_records_date ON sales_records(sale_date)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_budget ON expenses(budget_id, category_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
