package repository

import (
	"context"
	"errors"

	"github.com/kursadbilgin/call-assistant/internal/domain"
	"gorm.io/gorm"
)

// ClaimRepository persists claims. The reminder reference is weak: clearing
// it never touches the reminder row itself.
type ClaimRepository interface {
	Create(ctx context.Context, c *domain.Claim) error
	GetByID(ctx context.Context, userID, id string) (*domain.Claim, error)
	GetByReminderID(ctx context.Context, userID, reminderID string) (*domain.Claim, error)
	List(ctx context.Context, userID string) ([]domain.Claim, error)
	SetReminder(ctx context.Context, userID, id string, reminderID *string) error
	MarkCompleted(ctx context.Context, userID, id string) error
	ClearReminderRefs(ctx context.Context, userID string, reminderIDs []string) error
	Delete(ctx context.Context, userID string, ids []string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type GormClaimRepo struct {
	db *gorm.DB
}

func NewGormClaimRepo(db *gorm.DB) *GormClaimRepo {
	return &GormClaimRepo{db: db}
}

func (r *GormClaimRepo) Create(ctx context.Context, claim *domain.Claim) error {
	model := claimModelFromDomain(claim)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if claim != nil {
		*claim = *claimModelToDomain(model)
	}
	return nil
}

func (r *GormClaimRepo) GetByID(ctx context.Context, userID, id string) (*domain.Claim, error) {
	var model ClaimModel
	err := r.db.WithContext(ctx).
		First(&model, "id = ? AND user_id = ?", id, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return claimModelToDomain(&model), nil
}

func (r *GormClaimRepo) GetByReminderID(ctx context.Context, userID, reminderID string) (*domain.Claim, error) {
	var model ClaimModel
	err := r.db.WithContext(ctx).
		First(&model, "reminder_id = ? AND user_id = ?", reminderID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return claimModelToDomain(&model), nil
}

func (r *GormClaimRepo) List(ctx context.Context, userID string) ([]domain.Claim, error) {
	var models []ClaimModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	claims := make([]domain.Claim, 0, len(models))
	for i := range models {
		claims = append(claims, *claimModelToDomain(&models[i]))
	}
	return claims, nil
}

func (r *GormClaimRepo) SetReminder(ctx context.Context, userID, id string, reminderID *string) error {
	result := r.db.WithContext(ctx).
		Model(&ClaimModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("reminder_id", reminderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkCompleted flips the claim to its terminal state and detaches the
// reminder reference in the same update.
func (r *GormClaimRepo) MarkCompleted(ctx context.Context, userID, id string) error {
	result := r.db.WithContext(ctx).
		Model(&ClaimModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"completed":   true,
			"status":      domain.ClaimStatusCompleted,
			"reminder_id": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClearReminderRefs nulls the reference on claims pointing at the given
// reminders. Used when reminders are deleted without their claims.
func (r *GormClaimRepo) ClearReminderRefs(ctx context.Context, userID string, reminderIDs []string) error {
	if len(reminderIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&ClaimModel{}).
		Where("user_id = ? AND reminder_id IN ?", userID, reminderIDs).
		Update("reminder_id", nil).Error
}

func (r *GormClaimRepo) Delete(ctx context.Context, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&ClaimModel{}).Error
}

func (r *GormClaimRepo) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&ClaimModel{}).Error
}
