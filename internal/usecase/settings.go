package usecase

import (
	"context"
	"sync"

	"github.com/kahenya/duka/internal/domain/model"
	"github.com/kahenya/duka/internal/domain/repository"
)

// SettingsUseCase holds the store settings singleton. The row is read once
// on startup and cached; updates write through and refresh the cache, so
// request paths never touch the database for settings.
type SettingsUseCase struct {
	repo repository.SettingsRepository

	mu      sync.RWMutex
	current *model.StoreSettings
}

// NewSettingsUseCase constructs SettingsUseCase.
func NewSettingsUseCase(repo repository.SettingsRepository) *SettingsUseCase {
	return &SettingsUseCase{repo: repo}
}

// Warm loads the settings row into the cache, creating defaults on first run.
func (u *SettingsUseCase) Warm(ctx context.Context) error {
	settings, err := u.repo.Load(ctx)
	if err != nil {
		return err
	}
	u.mu.Lock()
	u.current = settings
	u.mu.Unlock()
	return nil
}

// Get returns the cached settings. Returns nil before Warm has run.
func (u *SettingsUseCase) Get() *model.StoreSettings {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.current
}

// Update persists new settings and refreshes the cache.
func (u *SettingsUseCase) Update(ctx context.Context, settings *model.StoreSettings) error {
	if err := u.repo.Update(ctx, settings); err != nil {
		return err
	}

	refreshed, err := u.repo.Load(ctx)
	if err != nil {
		return err
	}
	u.mu.Lock()
	u.current = refreshed
	u.mu.Unlock()
	return nil
}
