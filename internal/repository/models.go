package repository

import (
	"time"

	"github.com/kursadbilgin/call-assistant/internal/domain"
)

// ReminderModel is the persistence model for the reminders table.
type ReminderModel struct {
	ID            string      `gorm:"type:uuid;primaryKey"`
	UserID        string      `gorm:"type:uuid;not null"`
	Comment       string      `gorm:"type:varchar(255);not null"`
	Phone         string      `gorm:"type:varchar(50);not null"`
	FirstAttempt  time.Time   `gorm:"not null"`
	NextAttempt   time.Time   `gorm:"not null"`
	AttemptNumber int         `gorm:"not null;default:1"`
	Kind          domain.Kind `gorm:"type:varchar(20);not null"`
	NotifiedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ReminderModel) TableName() string {
	return "reminders"
}

// ClaimModel is the persistence model for the claims table.
type ClaimModel struct {
	ID                 string `gorm:"type:uuid;primaryKey"`
	UserID             string `gorm:"type:uuid;not null"`
	Reference          string `gorm:"type:varchar(255);not null"`
	Phone              string `gorm:"type:varchar(50);not null"`
	CRM                string `gorm:"type:varchar(100);not null"`
	ConnectionDatetime time.Time
	ReminderID         *string            `gorm:"type:uuid"`
	Status             domain.ClaimStatus `gorm:"type:varchar(50);not null"`
	Completed          bool               `gorm:"not null;default:false"`
	CreatedAt          time.Time
}

func (ClaimModel) TableName() string {
	return "claims"
}

// DailyTaskModel is the persistence model for daily_tasks.
type DailyTaskModel struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;not null"`
	Date      time.Time `gorm:"type:date;not null"`
	Task      string    `gorm:"type:varchar(255);not null"`
	Completed bool      `gorm:"not null;default:false"`
}

func (DailyTaskModel) TableName() string {
	return "daily_tasks"
}

// NoteModel is the persistence model for notes.
type NoteModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	UserID    string `gorm:"type:uuid;not null"`
	Content   string `gorm:"type:text;not null;default:''"`
	UpdatedAt time.Time
}

func (NoteModel) TableName() string {
	return "notes"
}

// UserSettingsModel is the persistence model for user_settings.
type UserSettingsModel struct {
	ID             string                `gorm:"type:uuid;primaryKey"`
	UserID         string                `gorm:"type:uuid;not null"`
	SchedulePolicy domain.SchedulePolicy `gorm:"type:varchar(20);not null"`
	FirstWorkDate  *time.Time            `gorm:"type:date"`
	Intervals      string                `gorm:"type:text;not null"`
	SoundEnabled   bool                  `gorm:"not null;default:true"`
	Volume         int                   `gorm:"not null;default:100"`
	DarkTheme      bool                  `gorm:"not null;default:false"`
	ColumnWidths   string                `gorm:"type:text;not null"`
	UpdatedAt      time.Time
}

func (UserSettingsModel) TableName() string {
	return "user_settings"
}

func reminderModelFromDomain(r *domain.Reminder) *ReminderModel {
	if r == nil {
		return nil
	}

	return &ReminderModel{
		ID:            r.ID,
		UserID:        r.UserID,
		Comment:       r.Comment,
		Phone:         r.Phone,
		FirstAttempt:  r.FirstAttempt,
		NextAttempt:   r.NextAttempt,
		AttemptNumber: r.AttemptNumber,
		Kind:          r.Kind,
		NotifiedAt:    r.NotifiedAt,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func reminderModelToDomain(m *ReminderModel) *domain.Reminder {
	if m == nil {
		return nil
	}

	return &domain.Reminder{
		ID:            m.ID,
		UserID:        m.UserID,
		Comment:       m.Comment,
		Phone:         m.Phone,
		FirstAttempt:  m.FirstAttempt,
		NextAttempt:   m.NextAttempt,
		AttemptNumber: m.AttemptNumber,
		Kind:          m.Kind,
		NotifiedAt:    m.NotifiedAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func claimModelFromDomain(c *domain.Claim) *ClaimModel {
	if c == nil {
		return nil
	}

	return &ClaimModel{
		ID:                 c.ID,
		UserID:             c.UserID,
		Reference:          c.Reference,
		Phone:              c.Phone,
		CRM:                c.CRM,
		ConnectionDatetime: c.ConnectionDatetime,
		ReminderID:         c.ReminderID,
		Status:             c.Status,
		Completed:          c.Completed,
		CreatedAt:          c.CreatedAt,
	}
}

func claimModelToDomain(m *ClaimModel) *domain.Claim {
	if m == nil {
		return nil
	}

	return &domain.Claim{
		ID:                 m.ID,
		UserID:             m.UserID,
		Reference:          m.Reference,
		Phone:              m.Phone,
		CRM:                m.CRM,
		ConnectionDatetime: m.ConnectionDatetime,
		ReminderID:         m.ReminderID,
		Status:             m.Status,
		Completed:          m.Completed,
		CreatedAt:          m.CreatedAt,
	}
}

func taskModelFromDomain(t *domain.DailyTask) *DailyTaskModel {
	if t == nil {
		return nil
	}

	return &DailyTaskModel{
		ID:        t.ID,
		UserID:    t.UserID,
		Date:      t.Date,
		Task:      t.Task,
		Completed: t.Completed,
	}
}

func taskModelToDomain(m *DailyTaskModel) *domain.DailyTask {
	if m == nil {
		return nil
	}

	return &domain.DailyTask{
		ID:        m.ID,
		UserID:    m.UserID,
		Date:      m.Date,
		Task:      m.Task,
		Completed: m.Completed,
	}
}

func noteModelToDomain(m *NoteModel) *domain.Note {
	if m == nil {
		return nil
	}

	return &domain.Note{
		ID:        m.ID,
		UserID:    m.UserID,
		Content:   m.Content,
		UpdatedAt: m.UpdatedAt,
	}
}

func settingsModelFromDomain(s *domain.UserSettings) *UserSettingsModel {
	if s == nil {
		return nil
	}

	return &UserSettingsModel{
		ID:             s.ID,
		UserID:         s.UserID,
		SchedulePolicy: s.SchedulePolicy,
		FirstWorkDate:  s.FirstWorkDate,
		Intervals:      s.Intervals,
		SoundEnabled:   s.SoundEnabled,
		Volume:         s.Volume,
		DarkTheme:      s.DarkTheme,
		ColumnWidths:   s.ColumnWidths,
		UpdatedAt:      s.UpdatedAt,
	}
}

func settingsModelToDomain(m *UserSettingsModel) *domain.UserSettings {
	if m == nil {
		return nil
	}

	return &domain.UserSettings{
		ID:             m.ID,
		UserID:         m.UserID,
		SchedulePolicy: m.SchedulePolicy,
		FirstWorkDate:  m.FirstWorkDate,
		Intervals:      m.Intervals,
		SoundEnabled:   m.SoundEnabled,
		Volume:         m.Volume,
		DarkTheme:      m.DarkTheme,
		ColumnWidths:   m.ColumnWidths,
		UpdatedAt:      m.UpdatedAt,
	}
}
