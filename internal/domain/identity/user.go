package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resto/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserRole controls what a staff member may do
type UserRole string

const (
	// RoleAdmin may manage ingredients, suppliers, imports and exports
	RoleAdmin UserRole = "admin"
	// RoleStaff may record exports and read inventory
	RoleStaff UserRole = "staff"
)

// IsValid checks if the role is valid
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

const bcryptCost = 12

// User is a staff member who can operate the inventory
type User struct {
	shared.BaseAggregateRoot
	shared.SoftDeletable
	Username     string
	DisplayName  string
	PasswordHash string
	Role         UserRole
	LastLoginAt  *time.Time
}

// NewUser creates a new user with a hashed password
func NewUser(username, displayName, password string, role UserRole) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if len(username) < 3 {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role: "+string(role))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		DisplayName:       displayName,
		PasswordHash:      string(hash),
		Role:              role,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the password after verifying the current one
func (u *User) ChangePassword(current, next string) error {
	if !u.CheckPassword(current) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if len(next) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcryptCost)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.UpdatedAt = time.Now()
	return nil
}

// RecordLogin stamps a successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

// UserRepository provides access to users
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByUsername finds an active user by username
	FindByUsername(ctx context.Context, username string) (*User, error)
	// Save persists a user (insert or update)
	Save(ctx context.Context, user *User) error
}
