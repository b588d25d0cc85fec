package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kursadbilgin/call-assistant/internal/domain"
	"gorm.io/gorm"
)

// NoteRepository persists the single free-text note each user owns.
type NoteRepository interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Note, error)
	Save(ctx context.Context, userID, content string) (*domain.Note, error)
}

type GormNoteRepo struct {
	db *gorm.DB
}

func NewGormNoteRepo(db *gorm.DB) *GormNoteRepo {
	return &GormNoteRepo{db: db}
}

func (r *GormNoteRepo) GetOrCreate(ctx context.Context, userID string) (*domain.Note, error) {
	var model NoteModel
	err := r.db.WithContext(ctx).
		First(&model, "user_id = ?", userID).Error
	if err == nil {
		return noteModelToDomain(&model), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	model = NoteModel{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   "",
		UpdatedAt: time.Now().UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}
	return noteModelToDomain(&model), nil
}

func (r *GormNoteRepo) Save(ctx context.Context, userID, content string) (*domain.Note, error) {
	note, err := r.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := r.db.WithContext(ctx).
		Model(&NoteModel{}).
		Where("id = ?", note.ID).
		Update("content", content)
	if result.Error != nil {
		return nil, result.Error
	}

	note.Content = content
	return note, nil
}
