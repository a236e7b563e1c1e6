package handlers

import (
	"context"
	"errors"
	"fmt"

	"vet-clinic-server/internal/models"
	"vet-clinic-server/internal/repository"
)

// ErrAdminEmailTaken is returned when the seed email already belongs to a
// non-admin account. The account is left alone rather than promoted.
var ErrAdminEmailTaken = errors.New("admin email belongs to a non-admin account")

// EnsureAdmin creates the administrator account unless it already exists.
// It reports whether an account was created.
func EnsureAdmin(ctx context.Context, users UserStore, email, password string) (bool, error) {
	existing, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if existing.Role != models.RoleAdmin {
			return false, ErrAdminEmailTaken
		}
		return false, nil
	case !errors.Is(err, repository.ErrUserNotFound):
		return false, fmt.Errorf("look up admin %s: %w", email, err)
	}

	if len(password) < 8 {
		return false, errors.New("admin password must be at least 8 characters")
	}

	admin := models.User{
		FirstName: "Clinic",
		LastName:  "Admin",
		Email:     email,
		Role:      models.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		return false, err
	}
	if err := users.Create(ctx, &admin); err != nil {
		return false, fmt.Errorf("create admin %s: %w", email, err)
	}
	return true, nil
}
