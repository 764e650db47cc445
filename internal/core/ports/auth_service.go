package ports

import (
	"context"
	"time"

	"github.com/99minutos/salary-api/internal/core/domain"
)

// AccessToken is the result of a successful login.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*AccessToken, error)
}

// OwnerGuard resolves a bearer token to a live principal and, when
// requestedUsername is non-empty, checks that the principal is that user.
type OwnerGuard interface {
	AuthorizeOwner(ctx context.Context, token, requestedUsername string) (*domain.User, error)
}
