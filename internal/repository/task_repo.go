package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kursadbilgin/call-assistant/internal/domain"
	"gorm.io/gorm"
)

// TaskRepository persists daily tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.DailyTask) error
	ListByMonth(ctx context.Context, userID string, year int, month time.Month) ([]domain.DailyTask, error)
	Toggle(ctx context.Context, userID, id string) (*domain.DailyTask, error)
	Delete(ctx context.Context, userID, id string) error
}

type GormTaskRepo struct {
	db *gorm.DB
}

func NewGormTaskRepo(db *gorm.DB) *GormTaskRepo {
	return &GormTaskRepo{db: db}
}

func (r *GormTaskRepo) Create(ctx context.Context, task *domain.DailyTask) error {
	model := taskModelFromDomain(task)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if task != nil {
		*task = *taskModelToDomain(model)
	}
	return nil
}

func (r *GormTaskRepo) ListByMonth(ctx context.Context, userID string, year int, month time.Month) ([]domain.DailyTask, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	var models []DailyTaskModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, nextMonth).
		Order("date ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	tasks := make([]domain.DailyTask, 0, len(models))
	for i := range models {
		tasks = append(tasks, *taskModelToDomain(&models[i]))
	}
	return tasks, nil
}

func (r *GormTaskRepo) Toggle(ctx context.Context, userID, id string) (*domain.DailyTask, error) {
	result := r.db.WithContext(ctx).
		Model(&DailyTaskModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("completed", gorm.Expr("NOT completed"))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}

	var model DailyTaskModel
	err := r.db.WithContext(ctx).
		First(&model, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return taskModelToDomain(&model), nil
}

func (r *GormTaskRepo) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&DailyTaskModel{}).Error
}
