package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tasklist/internal/model"
)

// UserRepository handles registration and lookups of task collection owners.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create registers a new user. Username uniqueness is enforced by this
// pre-check only (case-sensitive exact match); the column itself carries no
// constraint, so the check is only safe under a single writer.
func (r *UserRepository) Create(ctx context.Context, name, username string) (*model.User, error) {
	db := r.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateUser
	}

	user := model.User{Name: name, Username: username}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Find looks a user up by the (name, username) pair.
func (r *UserRepository) Find(ctx context.Context, name, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("name = ? AND username = ?", name, username).First(&user).Error
	switch {
	case err == nil:
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

// Exists reports whether a username is registered.
func (r *UserRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return count > 0, nil
}

// ListAll returns every registered user, for shells that offer switching
// between collections.
func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
