package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"tasklist/internal/clock"
	"tasklist/internal/model"
	"tasklist/internal/repository"
	"tasklist/internal/taskfile"
)

// ValidationError reports a rejected field value.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// TaskService is the caller-facing API over the store: user registration,
// task CRUD, snooze/dismiss actions and stream import/export.
type TaskService struct {
	users *repository.UserRepository
	tasks *repository.TaskRepository
	clock clock.Clock
}

func NewTaskService(users *repository.UserRepository, tasks *repository.TaskRepository, clk clock.Clock) *TaskService {
	return &TaskService{users: users, tasks: tasks, clock: clk}
}

// CreateUser registers a user and their empty task collection. Duplicate
// usernames are rejected with repository.ErrDuplicateUser.
func (s *TaskService) CreateUser(ctx context.Context, name, username string) (*model.User, error) {
	if username == "" {
		return nil, &ValidationError{Field: "username", Reason: "must not be empty"}
	}
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return s.users.Create(ctx, name, username)
}

// ListUserTasks returns the tasks of the user identified by the
// (name, username) pair, or repository.ErrNotFound for an unknown user.
func (s *TaskService) ListUserTasks(ctx context.Context, name, username string) ([]model.Task, error) {
	if _, err := s.users.Find(ctx, name, username); err != nil {
		return nil, err
	}
	return s.tasks.List(ctx, username)
}

// AddTask validates and inserts a new task, assigning the current time as
// its created key.
func (s *TaskService) AddTask(ctx context.Context, username, name, desc, deadline string, reminder model.ReminderPolicy) (*model.Task, error) {
	if err := validateTask(name, desc, deadline, reminder); err != nil {
		return nil, err
	}
	task := &model.Task{
		Username: username,
		Name:     name,
		Desc:     desc,
		Deadline: deadline,
		Reminder: reminder,
		Created:  s.clock.Now().Format(model.CreatedLayout),
	}
	if err := s.tasks.Add(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, username, created string) (*model.Task, error) {
	return s.tasks.Get(ctx, username, created)
}

// UpdateTask rewrites every field of the task addressed by oldCreated and
// generates a fresh created key. The old key becomes stale: callers must
// take the new key from the returned value. A missing old key is a silent
// no-op that still returns the key an update would have used.
func (s *TaskService) UpdateTask(ctx context.Context, username, oldCreated, name, desc, deadline string, reminder model.ReminderPolicy) (string, error) {
	if err := validateTask(name, desc, deadline, reminder); err != nil {
		return "", err
	}
	newCreated := s.clock.Now().Format(model.CreatedLayout)
	if err := s.tasks.Update(ctx, username, oldCreated, name, desc, deadline, reminder, newCreated); err != nil {
		return "", err
	}
	return newCreated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, username, created string) error {
	return s.tasks.Delete(ctx, username, created)
}

// ImportTaskToUser copies one task verbatim into another user's collection.
// The destination user must exist; a created-key collision there surfaces as
// repository.ErrDuplicateTask.
func (s *TaskService) ImportTaskToUser(ctx context.Context, fromUsername, toUsername, created string) error {
	ok, err := s.users.Exists(ctx, toUsername)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	return s.tasks.CopyToUser(ctx, fromUsername, toUsername, created)
}

// Snooze records the snooze selection with the current time as its anchor.
func (s *TaskService) Snooze(ctx context.Context, username, created string, policy model.SnoozePolicy) error {
	if !policy.Valid() {
		return &ValidationError{Field: "snooze", Value: string(policy), Reason: "unknown snooze policy"}
	}
	setAt := s.clock.Now().Format(model.SnoozeSetLayout)
	return s.tasks.SetSnoozed(ctx, username, created, policy, setAt)
}

// Dismiss clears the task's reminder and snooze state. Idempotent.
func (s *TaskService) Dismiss(ctx context.Context, username, created string) error {
	return s.tasks.DismissReminder(ctx, username, created)
}

// ExportTasks writes the user's collection to w in the exchange format.
// Tasks due within the next 24 hours are excluded.
func (s *TaskService) ExportTasks(ctx context.Context, username string, w io.Writer) error {
	tasks, err := s.tasks.List(ctx, username)
	if err != nil {
		return err
	}
	return taskfile.Export(w, tasks, s.clock.Now())
}

// ImportTasks reads an exchange stream into the user's collection. The file
// is parsed and validated in full before anything is persisted, so a
// malformed block imports nothing. Each accepted record gets a fresh created
// key offset by a millisecond counter to keep same-instant imports unique.
func (s *TaskService) ImportTasks(ctx context.Context, username string, r io.Reader) (int, error) {
	records, err := taskfile.Parse(r)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	for k, rec := range records {
		task := &model.Task{
			Username: username,
			Name:     rec.Name,
			Desc:     rec.Desc,
			Deadline: rec.Deadline,
			Reminder: rec.Reminder,
			Created:  now.Add(time.Duration(k) * time.Millisecond).Format(model.CreatedLayout),
		}
		if err := s.tasks.Add(ctx, task); err != nil {
			return k, fmt.Errorf("import task %q: %w", rec.Name, err)
		}
	}
	return len(records), nil
}

func validateTask(name, desc, deadline string, reminder model.ReminderPolicy) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(name) > model.MaxFieldLen {
		return &ValidationError{Field: "name", Value: name, Reason: "too long"}
	}
	if len(desc) > model.MaxFieldLen {
		return &ValidationError{Field: "description", Value: desc, Reason: "too long"}
	}
	if _, err := time.ParseInLocation(model.DeadlineLayout, deadline, time.Local); err != nil {
		return &ValidationError{Field: "deadline", Value: deadline, Reason: "must use the d.M.yyyy hh.mm format"}
	}
	if !reminder.Valid() {
		return &ValidationError{Field: "reminder", Value: string(reminder), Reason: "unknown reminder policy"}
	}
	return nil
}
