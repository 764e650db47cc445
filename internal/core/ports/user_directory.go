package ports

import (
	"context"

	"github.com/99minutos/salary-api/internal/core/domain"
)

// UserDirectory is the user store consumed by the auth core.
type UserDirectory interface {
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create persists a new user. It must fail with domain.ErrDuplicateUsername,
	// atomically, when the username is already taken.
	Create(ctx context.Context, username, passwordHash string) (*domain.User, error)
}
