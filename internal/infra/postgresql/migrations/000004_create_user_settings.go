package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/kursadbilgin/call-assistant/internal/repository"
	"gorm.io/gorm"
)

func createUserSettingsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000004_create_user_settings",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.UserSettingsModel{}); err != nil {
				return err
			}
			return tx.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_user_settings_user_id ON user_settings (user_id)`).Error
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.UserSettingsModel{})
		},
	}
}
