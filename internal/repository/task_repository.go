package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasklist/internal/model"
)

// TaskRepository handles CRUD for tasks. All operations address rows by the
// (username, created) pair; the uuid primary key stays internal.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Add inserts a new task. The created key must be unused within the user's
// collection.
func (r *TaskRepository) Add(ctx context.Context, task *model.Task) error {
	db := r.db.WithContext(ctx)

	taken, err := r.createdTaken(ctx, task.Username, task.Created)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateTask
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if err := db.Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Get is a point lookup by created key. Misses return ErrNotFound.
func (r *TaskRepository) Get(ctx context.Context, username, created string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).Where("username = ? AND created = ?", username, created).First(&task).Error
	switch {
	case err == nil:
		return &task, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("get task: %w", err)
	}
}

// List returns every task in the user's collection. Order is not part of the
// contract.
func (r *TaskRepository) List(ctx context.Context, username string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("username = ?", username).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update rewrites the row matched by oldCreated, replacing its key with
// newCreated. Snooze fields are left untouched. A missing old key is a
// silent no-op.
func (r *TaskRepository) Update(ctx context.Context, username, oldCreated, name, desc, deadline string, reminder model.ReminderPolicy, newCreated string) error {
	updates := map[string]interface{}{
		"name":     name,
		"desc":     desc,
		"deadline": deadline,
		"reminder": reminder,
		"created":  newCreated,
	}
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("username = ? AND created = ?", username, oldCreated).
		Updates(updates).Error
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete removes the row; absent keys are a no-op.
func (r *TaskRepository) Delete(ctx context.Context, username, created string) error {
	err := r.db.WithContext(ctx).Where("username = ? AND created = ?", username, created).
		Delete(&model.Task{}).Error
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// CopyToUser copies one task's full record, snooze fields included, into
// another user's collection. The created key is carried over verbatim; if it
// already exists in the destination the copy fails with ErrDuplicateTask.
// A missing source task is a no-op.
func (r *TaskRepository) CopyToUser(ctx context.Context, fromUsername, toUsername, created string) error {
	src, err := r.Get(ctx, fromUsername, created)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	taken, err := r.createdTaken(ctx, toUsername, created)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateTask
	}

	dup := *src
	dup.ID = uuid.NewString()
	dup.Username = toUsername
	if err := r.db.WithContext(ctx).Create(&dup).Error; err != nil {
		return fmt.Errorf("copy task: %w", err)
	}
	return nil
}

// SetSnoozed records the snooze selection and the moment it was made.
func (r *TaskRepository) SetSnoozed(ctx context.Context, username, created string, policy model.SnoozePolicy, setAt string) error {
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("username = ? AND created = ?", username, created).
		Updates(map[string]interface{}{"snoozed": policy, "snooze_set_at": setAt}).Error
	if err != nil {
		return fmt.Errorf("set snooze: %w", err)
	}
	return nil
}

// DismissReminder resets the reminder to "no reminder" and clears the snooze
// selection. The stored snooze timestamp is left behind; it is meaningless
// without a policy. Idempotent.
func (r *TaskRepository) DismissReminder(ctx context.Context, username, created string) error {
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("username = ? AND created = ?", username, created).
		Updates(map[string]interface{}{"reminder": model.RemindNever, "snoozed": ""}).Error
	if err != nil {
		return fmt.Errorf("dismiss reminder: %w", err)
	}
	return nil
}

func (r *TaskRepository) createdTaken(ctx context.Context, username, created string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("username = ? AND created = ?", username, created).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check task key: %w", err)
	}
	return count > 0, nil
}
