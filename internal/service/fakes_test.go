package service

import (
	"context"
	"time"

	"github.com/kursadbilgin/call-assistant/internal/domain"
)

type fakeReminderRepo struct {
	createFn            func(ctx context.Context, r *domain.Reminder) error
	getByIDFn           func(ctx context.Context, userID, id string) (*domain.Reminder, error)
	listFn              func(ctx context.Context, userID string, from, to *time.Time) ([]domain.Reminder, error)
	listUnnotifiedFn    func(ctx context.Context, userID string) ([]domain.Reminder, error)
	advanceAttemptFn    func(ctx context.Context, userID, id string, expectedAttempt int, nextAttempt time.Time, kind domain.Kind) (bool, error)
	updateNextAttemptFn func(ctx context.Context, userID, id string, nextAttempt time.Time) error
	updateCommentFn     func(ctx context.Context, userID, id, comment string) error
	updatePhoneFn       func(ctx context.Context, userID, id, phone string) error
	markNotifiedFn      func(ctx context.Context, userID, id string, notifiedAt time.Time) (bool, error)
	deleteFn            func(ctx context.Context, userID string, ids []string) error
	deleteByUserFn      func(ctx context.Context, userID string) error
}

func (f *fakeReminderRepo) Create(ctx context.Context, r *domain.Reminder) error {
	return f.createFn(ctx, r)
}

func (f *fakeReminderRepo) GetByID(ctx context.Context, userID, id string) (*domain.Reminder, error) {
	return f.getByIDFn(ctx, userID, id)
}

func (f *fakeReminderRepo) List(ctx context.Context, userID string, from, to *time.Time) ([]domain.Reminder, error) {
	return f.listFn(ctx, userID, from, to)
}

func (f *fakeReminderRepo) ListUnnotified(ctx context.Context, userID string) ([]domain.Reminder, error) {
	return f.listUnnotifiedFn(ctx, userID)
}

func (f *fakeReminderRepo) AdvanceAttempt(ctx context.Context, userID, id string, expectedAttempt int, nextAttempt time.Time, kind domain.Kind) (bool, error) {
	return f.advanceAttemptFn(ctx, userID, id, expectedAttempt, nextAttempt, kind)
}

func (f *fakeReminderRepo) UpdateNextAttempt(ctx context.Context, userID, id string, nextAttempt time.Time) error {
	return f.updateNextAttemptFn(ctx, userID, id, nextAttempt)
}

func (f *fakeReminderRepo) UpdateComment(ctx context.Context, userID, id, comment string) error {
	return f.updateCommentFn(ctx, userID, id, comment)
}

func (f *fakeReminderRepo) UpdatePhone(ctx context.Context, userID, id, phone string) error {
	return f.updatePhoneFn(ctx, userID, id, phone)
}

func (f *fakeReminderRepo) MarkNotified(ctx context.Context, userID, id string, notifiedAt time.Time) (bool, error) {
	return f.markNotifiedFn(ctx, userID, id, notifiedAt)
}

func (f *fakeReminderRepo) Delete(ctx context.Context, userID string, ids []string) error {
	return f.deleteFn(ctx, userID, ids)
}

func (f *fakeReminderRepo) DeleteByUser(ctx context.Context, userID string) error {
	return f.deleteByUserFn(ctx, userID)
}

type fakeClaimRepo struct {
	createFn            func(ctx context.Context, c *domain.Claim) error
	getByIDFn           func(ctx context.Context, userID, id string) (*domain.Claim, error)
	getByReminderIDFn   func(ctx context.Context, userID, reminderID string) (*domain.Claim, error)
	listFn              func(ctx context.Context, userID string) ([]domain.Claim, error)
	setReminderFn       func(ctx context.Context, userID, id string, reminderID *string) error
	markCompletedFn     func(ctx context.Context, userID, id string) error
	clearReminderRefsFn func(ctx context.Context, userID string, reminderIDs []string) error
	deleteFn            func(ctx context.Context, userID string, ids []string) error
	deleteByUserFn      func(ctx context.Context, userID string) error
}

func (f *fakeClaimRepo) Create(ctx context.Context, c *domain.Claim) error {
	return f.createFn(ctx, c)
}

func (f *fakeClaimRepo) GetByID(ctx context.Context, userID, id string) (*domain.Claim, error) {
	return f.getByIDFn(ctx, userID, id)
}

func (f *fakeClaimRepo) GetByReminderID(ctx context.Context, userID, reminderID string) (*domain.Claim, error) {
	return f.getByReminderIDFn(ctx, userID, reminderID)
}

func (f *fakeClaimRepo) List(ctx context.Context, userID string) ([]domain.Claim, error) {
	return f.listFn(ctx, userID)
}

func (f *fakeClaimRepo) SetReminder(ctx context.Context, userID, id string, reminderID *string) error {
	return f.setReminderFn(ctx, userID, id, reminderID)
}

func (f *fakeClaimRepo) MarkCompleted(ctx context.Context, userID, id string) error {
	return f.markCompletedFn(ctx, userID, id)
}

func (f *fakeClaimRepo) ClearReminderRefs(ctx context.Context, userID string, reminderIDs []string) error {
	return f.clearReminderRefsFn(ctx, userID, reminderIDs)
}

func (f *fakeClaimRepo) Delete(ctx context.Context, userID string, ids []string) error {
	return f.deleteFn(ctx, userID, ids)
}

func (f *fakeClaimRepo) DeleteByUser(ctx context.Context, userID string) error {
	return f.deleteByUserFn(ctx, userID)
}

type fakeSettingsRepo struct {
	getOrCreateFn func(ctx context.Context, userID string) (*domain.UserSettings, error)
	saveFn        func(ctx context.Context, settings *domain.UserSettings) error
}

func (f *fakeSettingsRepo) GetOrCreate(ctx context.Context, userID string) (*domain.UserSettings, error) {
	return f.getOrCreateFn(ctx, userID)
}

func (f *fakeSettingsRepo) Save(ctx context.Context, settings *domain.UserSettings) error {
	return f.saveFn(ctx, settings)
}

type fakeTaskRepo struct {
	createFn      func(ctx context.Context, t *domain.DailyTask) error
	listByMonthFn func(ctx context.Context, userID string, year int, month time.Month) ([]domain.DailyTask, error)
	toggleFn      func(ctx context.Context, userID, id string) (*domain.DailyTask, error)
	deleteFn      func(ctx context.Context, userID, id string) error
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *domain.DailyTask) error {
	return f.createFn(ctx, t)
}

func (f *fakeTaskRepo) ListByMonth(ctx context.Context, userID string, year int, month time.Month) ([]domain.DailyTask, error) {
	return f.listByMonthFn(ctx, userID, year, month)
}

func (f *fakeTaskRepo) Toggle(ctx context.Context, userID, id string) (*domain.DailyTask, error) {
	return f.toggleFn(ctx, userID, id)
}

func (f *fakeTaskRepo) Delete(ctx context.Context, userID, id string) error {
	return f.deleteFn(ctx, userID, id)
}

type fakeNoteRepo struct {
	getOrCreateFn func(ctx context.Context, userID string) (*domain.Note, error)
	saveFn        func(ctx context.Context, userID, content string) (*domain.Note, error)
}

func (f *fakeNoteRepo) GetOrCreate(ctx context.Context, userID string) (*domain.Note, error) {
	return f.getOrCreateFn(ctx, userID)
}

func (f *fakeNoteRepo) Save(ctx context.Context, userID, content string) (*domain.Note, error) {
	return f.saveFn(ctx, userID, content)
}
