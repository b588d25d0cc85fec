package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/kursadbilgin/call-assistant/internal/repository"
	"gorm.io/gorm"
)

func createClaimsTable() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000002_create_claims",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.ClaimModel{}); err != nil {
				return err
			}
			indexes := []string{
				`CREATE INDEX IF NOT EXISTS idx_claims_user_status ON claims (user_id, status)`,
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_claims_reminder_id ON claims (reminder_id) WHERE reminder_id IS NOT NULL`,
			}
			for _, sql := range indexes {
				if err := tx.Exec(sql).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.ClaimModel{})
		},
	}
}
