package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/salary-api/internal/core/domain"
	"github.com/99minutos/salary-api/internal/core/ports"
)

// OwnerGuard resolves bearer tokens to live users and enforces that the
// principal owns the requested resource.
type OwnerGuard struct {
	issuer ports.TokenIssuer
	users  ports.UserDirectory
	opts   options
	log    zerolog.Logger
}

func NewOwnerGuard(issuer ports.TokenIssuer, users ports.UserDirectory, log zerolog.Logger, opts ...Option) *OwnerGuard {
	return &OwnerGuard{
		issuer: issuer,
		users:  users,
		opts:   buildOptions(opts),
		log:    log,
	}
}

// AuthorizeOwner verifies token and looks its subject up in the directory on
// every call; a token outliving its user is rejected with
// domain.ErrUnknownSubject. With a non-empty requestedUsername the principal
// must be that user, otherwise domain.ErrForbidden.
func (g *OwnerGuard) AuthorizeOwner(ctx context.Context, token, requestedUsername string) (*domain.User, error) {
	subject, err := g.issuer.Verify(token, g.opts.now())
	if err != nil {
		g.log.Debug().Err(err).Msg("token rejected")
		return nil, err
	}

	principal, err := g.users.FindByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			g.log.Info().Str("subject", subject).Msg("token subject no longer exists")
			return nil, domain.ErrUnknownSubject
		}
		return nil, fmt.Errorf("resolve principal: %w", err)
	}

	if requestedUsername != "" && principal.Username != requestedUsername {
		g.opts.audit.Publish(domain.AuthEvent{
			Kind:       domain.AuthEventAccessDenied,
			Username:   principal.Username,
			Resource:   requestedUsername,
			OccurredAt: g.opts.now().UTC(),
		})
		g.log.Info().
			Str("username", principal.Username).
			Str("resource_owner", requestedUsername).
			Msg("access denied")
		return nil, domain.ErrForbidden
	}

	return principal, nil
}
