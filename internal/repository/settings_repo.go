package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kursadbilgin/call-assistant/internal/domain"
	"github.com/kursadbilgin/call-assistant/internal/schedule"
	"gorm.io/gorm"
)

// SettingsRepository persists the per-user settings aggregate. Settings rows
// are created lazily with defaults on first read.
type SettingsRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.UserSettings, error)
	Save(ctx context.Context, settings *domain.UserSettings) error
}

type GormSettingsRepo struct {
	db *gorm.DB
}

func NewGormSettingsRepo(db *gorm.DB) *GormSettingsRepo {
	return &GormSettingsRepo{db: db}
}

// DefaultUserSettings returns the settings a fresh user starts with.
func DefaultUserSettings(userID string) *domain.UserSettings {
	return &domain.UserSettings{
		ID:             uuid.NewString(),
		UserID:         userID,
		SchedulePolicy: domain.PolicyFiveTwo,
		FirstWorkDate:  nil,
		Intervals:      schedule.DefaultIntervalTable().CanonicalJSON(),
		SoundEnabled:   true,
		Volume:         100,
		DarkTheme:      false,
		ColumnWidths:   "{}",
	}
}

func (r *GormSettingsRepo) GetOrCreate(ctx context.Context, userID string) (*domain.UserSettings, error) {
	var model UserSettingsModel
	err := r.db.WithContext(ctx).
		First(&model, "user_id = ?", userID).Error
	if err == nil {
		return settingsModelToDomain(&model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := DefaultUserSettings(userID)
	defaults.UpdatedAt = time.Now().UTC()
	created := settingsModelFromDomain(defaults)
	if err := r.db.WithContext(ctx).Create(created).Error; err != nil {
		return nil, err
	}
	return settingsModelToDomain(created), nil
}

func (r *GormSettingsRepo) Save(ctx context.Context, settings *domain.UserSettings) error {
	model := settingsModelFromDomain(settings)
	result := r.db.WithContext(ctx).
		Model(&UserSettingsModel{}).
		Where("id = ? AND user_id = ?", model.ID, model.UserID).
		Updates(map[string]any{
			"schedule_policy": model.SchedulePolicy,
			"first_work_date": model.FirstWorkDate,
			"intervals":       model.Intervals,
			"sound_enabled":   model.SoundEnabled,
			"volume":          model.Volume,
			"dark_theme":      model.DarkTheme,
			"column_widths":   model.ColumnWidths,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
