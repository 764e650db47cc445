package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/salary-api/internal/core/domain"
	"github.com/99minutos/salary-api/internal/core/ports"
)

// dummyPassword seeds the hash that unknown usernames are verified against,
// so a missing user costs the same bcrypt work as a wrong password.
const dummyPassword = "salary-api/unknown-user"

const tokenTypeBearer = "bearer"

// Option customises AuthService and OwnerGuard construction.
type Option func(*options)

type options struct {
	now   func() time.Time
	audit ports.AuditPublisher
}

// WithClock overrides the wall clock used for token issuance and checks.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithAudit sends auth events to publisher.
func WithAudit(publisher ports.AuditPublisher) Option {
	return func(o *options) { o.audit = publisher }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now, audit: nopPublisher{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type nopPublisher struct{}

func (nopPublisher) Publish(domain.AuthEvent) {}

// AuthService implements registration and login.
type AuthService struct {
	users     ports.UserDirectory
	hasher    ports.CredentialHasher
	issuer    ports.TokenIssuer
	dummyHash string
	opts      options
	log       zerolog.Logger
}

// NewAuthService wires the service and precomputes the dummy hash with the
// same hasher used for real accounts.
func NewAuthService(
	users ports.UserDirectory,
	hasher ports.CredentialHasher,
	issuer ports.TokenIssuer,
	log zerolog.Logger,
	opts ...Option,
) (*AuthService, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		issuer:    issuer,
		dummyHash: dummy,
		opts:      buildOptions(opts),
		log:       log,
	}, nil
}

// Register hashes password and creates the user. A taken username yields
// domain.ErrDuplicateUsername; a password bcrypt cannot take yields
// domain.ErrInvalidInput.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if err := checkHashable(password); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("failed to hash password")
		return nil, err
	}

	user, err := s.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			s.log.Info().Str("username", username).Msg("registration rejected: username taken")
			return nil, err
		}
		s.log.Error().Err(err).Str("username", username).Msg("failed to create user")
		return nil, fmt.Errorf("register: %w", err)
	}

	s.publish(domain.AuthEventRegistered, username, "")
	s.log.Info().Str("username", username).Msg("user registered")
	return user, nil
}

// Authenticate checks the credentials and issues a bearer token. Unknown users
// and wrong passwords take the same path and return the same error.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*ports.AccessToken, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		s.log.Error().Err(err).Msg("user lookup failed during login")
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	hash := s.dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	ok, err := s.hasher.Verify(password, hash)
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("password verification fault")
		return nil, err
	}
	if user == nil || !ok {
		s.publish(domain.AuthEventLoginFailed, username, "")
		s.log.Info().Str("username", username).Msg("login failed")
		return nil, domain.ErrAuthenticationFailed
	}

	now := s.opts.now()
	token, err := s.issuer.Issue(user.Username, now)
	if err != nil {
		s.log.Error().Err(err).Str("username", user.Username).Msg("failed to issue token")
		return nil, err
	}

	s.publish(domain.AuthEventLoginSucceeded, user.Username, "")
	s.log.Info().Str("username", user.Username).Msg("login succeeded")

	return &ports.AccessToken{
		Token:     token,
		TokenType: tokenTypeBearer,
		ExpiresAt: now.Add(s.issuer.TTL()),
	}, nil
}

func (s *AuthService) publish(kind domain.AuthEventKind, username, resource string) {
	s.opts.audit.Publish(domain.AuthEvent{
		Kind:       kind,
		Username:   username,
		Resource:   resource,
		OccurredAt: s.opts.now().UTC(),
	})
}
