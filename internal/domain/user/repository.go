package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for back-office accounts.
type Repository interface {
	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves a user by its email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new user.
	Save(ctx context.Context, u *User) error

	// Delete removes a user permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
