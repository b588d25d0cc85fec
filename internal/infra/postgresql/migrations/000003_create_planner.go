package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/kursadbilgin/call-assistant/internal/repository"
	"gorm.io/gorm"
)

func createPlannerTables() *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: "000003_create_planner",
		Migrate: func(tx *gorm.DB) error {
			if err := tx.AutoMigrate(&repository.DailyTaskModel{}, &repository.NoteModel{}); err != nil {
				return err
			}
			indexes := []string{
				`CREATE INDEX IF NOT EXISTS idx_daily_tasks_user_date ON daily_tasks (user_id, date)`,
				`CREATE UNIQUE INDEX IF NOT EXISTS idx_notes_user_id ON notes (user_id)`,
			}
			for _, sql := range indexes {
				if err := tx.Exec(sql).Error; err != nil {
					return err
				}
			}
			return nil
		},
		Rollback: func(tx *gorm.DB) error {
			return tx.Migrator().DropTable(&repository.DailyTaskModel{}, &repository.NoteModel{})
		},
	}
}
