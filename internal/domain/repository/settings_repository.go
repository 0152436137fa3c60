package repository

import (
	"context"

	"github.com/sangkips/gestor-mesas/internal/domain/entity"
)

// SettingsRepository defines the interface for store settings data access
type SettingsRepository interface {
	// Get returns the stored settings, or nil when none were saved yet
	Get(ctx context.Context) (*entity.StoreSettings, error)
	Save(ctx context.Context, settings *entity.StoreSettings) error
}
