package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/kursadbilgin/call-assistant/internal/repository"
	"gorm.io/gorm"
)

func createRemindersTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000001_create_reminders",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.ReminderModel{}); err != nil {
				return err
			}
			indexes := []string{
				`CREATE INDEX IF NOT EXISTS idx_reminders_user_next ON reminders (user_id, next_attempt)`,
				`CREATE INDEX IF NOT EXISTS idx_reminders_unnotified ON reminders (user_id, next_attempt) WHERE notified_at IS NULL`,
			}
			for _, sql := range indexes {
				if err := tx.Exec(sql).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.ReminderModel{})
		},
	}
}
