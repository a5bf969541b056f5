package service

import (
	"context"
	"errors"
	"time"

	"atelier-rental-backend/internal/config"
	"atelier-rental-backend/internal/domain"
	"atelier-rental-backend/internal/logger"
	"atelier-rental-backend/internal/repository"
)

// settingsService fronts the settings table, the single source of truth
// for notification targets. The YAML notify block exists only as the
// legacy seed consumed once by MigrateLegacy.
type settingsService struct {
	settingsRepo repository.SettingsRepository
	legacy       config.NotifyConfig
}

func NewSettingsService(settingsRepo repository.SettingsRepository, legacy config.NotifyConfig) SettingsService {
	return &settingsService{
		settingsRepo: settingsRepo,
		legacy:       legacy,
	}
}

func (s *settingsService) GetAll(ctx context.Context) (map[string]string, error) {
	return s.settingsRepo.GetAll(ctx)
}

func (s *settingsService) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return domain.ErrInvalidInput
	}
	return s.settingsRepo.Set(ctx, key, value)
}

// MigrateLegacy imports the notify block from the config file into the
// settings table, once. The marker row makes the migration idempotent;
// after it exists the config block is never consulted again.
func (s *settingsService) MigrateLegacy(ctx context.Context) error {
	_, err := s.settingsRepo.Get(ctx, domain.SettingLegacyMigratedOn)
	if err == nil {
		return nil // already migrated
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	seed := map[string]string{
		domain.SettingNotifyTopic: s.legacy.Topic,
		domain.SettingNotifyPhone: s.legacy.Phone,
		domain.SettingNotifyEmail: s.legacy.StaffEmail,
	}
	for key, value := range seed {
		if value == "" {
			continue
		}
		if err := s.settingsRepo.Set(ctx, key, value); err != nil {
			return err
		}
	}

	if err := s.settingsRepo.Set(ctx, domain.SettingLegacyMigratedOn, time.Now().Format(time.RFC3339)); err != nil {
		return err
	}
	logger.Info("Legacy notification config migrated into settings table")
	return nil
}
