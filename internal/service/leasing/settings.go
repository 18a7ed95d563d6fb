package leasing

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/cache"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/go-playground/validator/v10"
)

const settingsCacheKey = "leasing_settings"

type SettingsUseCase interface {
	Get(ctx context.Context) (*domain.LeasingSettings, error)
	Update(ctx context.Context, input UpdateSettingsInput) (*domain.LeasingSettings, error)
	DefaultUOM(ctx context.Context) (domain.UOM, error)
}

// UpdateSettingsInput changes only the fields that are set.
type UpdateSettingsInput struct {
	DefaultRentalRateCents *int64      `json:"default_rental_rate_cents" validate:"omitempty,gte=0"`
	DefaultUOM             *domain.UOM `json:"default_uom" validate:"omitempty,oneof=Week Month"`
	EnablePaymentReminders *bool       `json:"enable_payment_reminders"`
}

type SettingsService struct {
	repo     repository.SettingsRepository
	cache    *cache.LocalCache
	validate *validator.Validate
}

func NewSettingsService(repo repository.SettingsRepository, local *cache.LocalCache) *SettingsService {
	return &SettingsService{repo: repo, cache: local, validate: validator.New()}
}

func (s *SettingsService) Get(ctx context.Context) (*domain.LeasingSettings, error) {
	if s.cache == nil {
		return s.repo.Get(ctx)
	}
	val, err := s.cache.GetOrSet(settingsCacheKey, func() (any, error) {
		settings, err := s.repo.Get(ctx)
		if err != nil {
			return nil, err
		}
		return *settings, nil
	})
	if err != nil {
		return nil, err
	}
	settings := val.(domain.LeasingSettings)
	return &settings, nil
}

func (s *SettingsService) Update(ctx context.Context, input UpdateSettingsInput) (*domain.LeasingSettings, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "invalid leasing settings", err)
	}
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if input.DefaultRentalRateCents != nil {
		settings.DefaultRentalRateCents = *input.DefaultRentalRateCents
	}
	if input.DefaultUOM != nil {
		settings.DefaultUOM = *input.DefaultUOM
	}
	if input.EnablePaymentReminders != nil {
		settings.EnablePaymentReminders = *input.EnablePaymentReminders
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Delete(settingsCacheKey)
	}
	return settings, nil
}

// DefaultUOM is the unit new room items are billed in.
func (s *SettingsService) DefaultUOM(ctx context.Context) (domain.UOM, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return "", err
	}
	return settings.UOM(), nil
}

var _ SettingsUseCase = (*SettingsService)(nil)
