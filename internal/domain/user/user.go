package user

import (
	"strings"
	"time"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	"github.com/google/uuid"
)

// Role distinguishes administrators from regular accounts.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

// User is a back-office account.
type User struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	role         Role

	createdAt time.Time
	updatedAt time.Time
}

// NewUser creates a new User with an already-hashed password.
func NewUser(name, email, passwordHash string, role Role) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("user email is invalid: " + email)
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("user password hash is required")
	}
	if role != RoleAdmin && role != RoleEditor {
		return nil, domain.NewValidationError("invalid user role: " + string(role))
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        strings.ToLower(email),
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email, passwordHash string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's lowercase email address.
func (u *User) Email() string { return u.email }

// PasswordHash returns the bcrypt hash of the user's password.
func (u *User) PasswordHash() string { return u.passwordHash }

// Role returns the user's role.
func (u *User) Role() Role { return u.role }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
