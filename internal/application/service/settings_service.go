package service

import (
	"context"
	"strings"

	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/domain/repository"
	"github.com/sangkips/gestor-mesas/pkg/apperror"
)

const defaultReceiptFooter = "Obrigado pela preferencia!"

// SettingsService handles the store details printed on bills
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     entity.StoreSettings
}

// NewSettingsService creates a new settings service. storeName is used until
// the settings are saved for the first time.
func NewSettingsService(settingsRepo repository.SettingsRepository, storeName string) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		defaults: entity.StoreSettings{
			ID:            entity.StoreSettingsID,
			StoreName:     storeName,
			ReceiptFooter: defaultReceiptFooter,
		},
	}
}

// GetSettings retrieves the store settings, falling back to the defaults
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.StoreSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := s.defaults
		return &defaults, nil
	}
	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	StoreName     string
	Address       string
	Phone         string
	ReceiptFooter string
}

// UpdateSettings replaces the store settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.StoreSettings, error) {
	name := strings.TrimSpace(input.StoreName)
	if name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "store_name", Message: "store name is required"},
		})
	}

	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	settings.StoreName = name
	settings.Address = strings.TrimSpace(input.Address)
	settings.Phone = strings.TrimSpace(input.Phone)
	settings.ReceiptFooter = strings.TrimSpace(input.ReceiptFooter)

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
