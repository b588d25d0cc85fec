package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kursadbilgin/call-assistant/internal/domain"
	"gorm.io/gorm"
)

// ReminderRepository persists reminders. Every operation is scoped to the
// owning user; a row belonging to someone else behaves as absent.
type ReminderRepository interface {
	Create(ctx context.Context, r *domain.Reminder) error
	GetByID(ctx context.Context, userID, id string) (*domain.Reminder, error)
	List(ctx context.Context, userID string, from, to *time.Time) ([]domain.Reminder, error)
	ListUnnotified(ctx context.Context, userID string) ([]domain.Reminder, error)
	AdvanceAttempt(ctx context.Context, userID, id string, expectedAttempt int, nextAttempt time.Time, kind domain.Kind) (bool, error)
	UpdateNextAttempt(ctx context.Context, userID, id string, nextAttempt time.Time) error
	UpdateComment(ctx context.Context, userID, id, comment string) error
	UpdatePhone(ctx context.Context, userID, id, phone string) error
	MarkNotified(ctx context.Context, userID, id string, notifiedAt time.Time) (bool, error)
	Delete(ctx context.Context, userID string, ids []string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type GormReminderRepo struct {
	db *gorm.DB
}

func NewGormReminderRepo(db *gorm.DB) *GormReminderRepo {
	return &GormReminderRepo{db: db}
}

func (r *GormReminderRepo) Create(ctx context.Context, reminder *domain.Reminder) error {
	model := reminderModelFromDomain(reminder)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if reminder != nil {
		*reminder = *reminderModelToDomain(model)
	}
	return nil
}

func (r *GormReminderRepo) GetByID(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	var model ReminderModel
	err := r.db.WithContext(ctx).
		First(&model, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return reminderModelToDomain(&model), nil
}

func (r *GormReminderRepo) List(ctx context.Context, userID string, from, to *time.Time) ([]domain.Reminder, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if from != nil {
		query = query.Where("next_attempt >= ?", *from)
	}
	if to != nil {
		query = query.Where("next_attempt < ?", *to)
	}

	var models []ReminderModel
	if err := query.Order("next_attempt ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	reminders := make([]domain.Reminder, 0, len(models))
	for i := range models {
		reminders = append(reminders, *reminderModelToDomain(&models[i]))
	}
	return reminders, nil
}

func (r *GormReminderRepo) ListUnnotified(ctx context.Context, userID string) ([]domain.Reminder, error) {
	var models []ReminderModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND notified_at IS NULL", userID).
		Order("next_attempt ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	reminders := make([]domain.Reminder, 0, len(models))
	for i := range models {
		reminders = append(reminders, *reminderModelToDomain(&models[i]))
	}
	return reminders, nil
}

// AdvanceAttempt bumps the attempt counter and reschedules in one conditional
// update. It reports false when another request advanced the reminder first,
// which protects the monotonic attempt sequence under concurrent retries.
func (r *GormReminderRepo) AdvanceAttempt(ctx context.Context, userID, id string, expectedAttempt int, nextAttempt time.Time, kind domain.Kind) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&ReminderModel{}).
		Where("id = ? AND user_id = ? AND attempt_number = ?", id, userID, expectedAttempt).
		Updates(map[string]any{
			"attempt_number": expectedAttempt + 1,
			"next_attempt":   nextAttempt,
			"kind":           kind,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormReminderRepo) UpdateNextAttempt(ctx context.Context, userID, id string, nextAttempt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&ReminderModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("next_attempt", nextAttempt)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormReminderRepo) UpdateComment(ctx context.Context, userID, id, comment string) error {
	result := r.db.WithContext(ctx).
		Model(&ReminderModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("comment", comment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *GormReminderRepo) UpdatePhone(ctx context.Context, userID, id, phone string) error {
	result := r.db.WithContext(ctx).
		Model(&ReminderModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("phone", phone)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkNotified transitions notified_at from NULL exactly once. The NULL guard
// in the WHERE clause is what makes delivery at-most-once under concurrent
// polls from the same user's sessions.
func (r *GormReminderRepo) MarkNotified(ctx context.Context, userID, id string, notifiedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&ReminderModel{}).
		Where("id = ? AND user_id = ? AND notified_at IS NULL", id, userID).
		Update("notified_at", notifiedAt)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormReminderRepo) Delete(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&ReminderModel{}).Error
}

func (r *GormReminderRepo) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&ReminderModel{}).Error
}
