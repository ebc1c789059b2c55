package repository

import (
	"context"

	"github.com/kahenya/duka/internal/domain/model"
)

// SettingsRepository manages the single store settings record.
type SettingsRepository interface {
	// Load fetches the settings row, creating it with defaults on first use.
	Load(ctx context.Context) (*model.StoreSettings, error)
	Update(ctx context.Context, settings *model.StoreSettings) error
}

// StaffRepository describes persistence operations for staff accounts.
type StaffRepository interface {
	Create(ctx context.Context, login, passwordHash string) (*model.StaffUser, error)
	GetByLogin(ctx context.Context, login string) (*model.StaffUser, error)
	GetByID(ctx context.Context, id int64) (*model.StaffUser, error)
}
