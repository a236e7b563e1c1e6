package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"vet-clinic-server/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

// Users stores clinic accounts with gorm.
type Users struct {
	DB *gorm.DB
}

// NewUsers creates a Users repository.
func NewUsers(db *gorm.DB) *Users {
	return &Users{DB: db}
}

func (r *Users) Create(ctx context.Context, user *models.User) error {
	if err := r.DB.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Users) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.first(ctx, "email = ?", email)
}

// ListByRole returns users with the given role ordered by last name.
func (r *Users) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var users []models.User
	if err := r.DB.WithContext(ctx).Where("role = ?", role).Order("last_name asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users with role %s: %w", role, err)
	}
	return users, nil
}

func (r *Users) first(ctx context.Context, query string, arg string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
