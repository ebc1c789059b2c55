package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/kahenya/duka/internal/domain/errors"
	"github.com/kahenya/duka/internal/domain/model"
)

type settingsRepository struct {
	storage *Storage
}

// Load fetches the single settings row, seeding defaults on first use. The
// fixed id keeps the table a singleton.
func (r *settingsRepository) Load(ctx context.Context) (*model.StoreSettings, error) {
	const query = `INSERT INTO store_settings (id, pickup_location, pickup_date, pickup_time, pickup_days_info, store_phone, store_email)
                   VALUES (1, 'Main Store, 123 Fashion Street', CURRENT_DATE + 1, '22:00', 'Monday - Saturday', '+254 700 000 000', 'store@example.com')
                   ON CONFLICT (id) DO UPDATE SET id = store_settings.id
                   RETURNING pickup_location, pickup_date, pickup_time, pickup_days_info, store_phone, store_email, updated_at`
	var s model.StoreSettings
	err := r.storage.pool.QueryRow(ctx, query).Scan(
		&s.PickupLocation, &s.PickupDate, &s.PickupTime, &s.PickupDaysInfo,
		&s.StorePhone, &s.StoreEmail, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings *model.StoreSettings) error {
	const query = `UPDATE store_settings
                   SET pickup_location=$1, pickup_date=$2, pickup_time=$3, pickup_days_info=$4,
                       store_phone=$5, store_email=$6, updated_at=NOW()
                   WHERE id=1`
	tag, err := r.storage.pool.Exec(ctx, query,
		settings.PickupLocation, settings.PickupDate, settings.PickupTime,
		settings.PickupDaysInfo, settings.StorePhone, settings.StoreEmail)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

type staffRepository struct {
	storage *Storage
}

func (r *staffRepository) Create(ctx context.Context, login, passwordHash string) (*model.StaffUser, error) {
	const query = `INSERT INTO staff_users (login, password_hash) VALUES ($1, $2) RETURNING id, created_at`
	var u model.StaffUser
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *staffRepository) GetByLogin(ctx context.Context, login string) (*model.StaffUser, error) {
	const query = `SELECT id, login, password_hash, created_at FROM staff_users WHERE login=$1`
	var u model.StaffUser
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*model.StaffUser, error) {
	const query = `SELECT id, login, password_hash, created_at FROM staff_users WHERE id=$1`
	var u model.StaffUser
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
