package repository

import (
	"context"

	"docshelf/internal/model"
)

// UserRepository defines data access for user accounts.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by email. Used for login and for the
	// uniqueness check on registration.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
