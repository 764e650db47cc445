package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/99minutos/salary-api/internal/core/domain"
)

// AllowedAlgorithms lists the signing algorithms a TokenConfig may select.
var AllowedAlgorithms = map[string]*jwt.SigningMethodHMAC{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// TokenConfig is the process-wide token configuration. It is built once at
// startup and never mutated.
type TokenConfig struct {
	Secret    []byte
	TTL       time.Duration
	Algorithm string
}

// Validate checks that every field is present and well-formed.
func (c TokenConfig) Validate() error {
	if len(c.Secret) == 0 {
		return errors.New("token config: signing secret is empty")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("token config: ttl must be positive, got %s", c.TTL)
	}
	if _, ok := AllowedAlgorithms[c.Algorithm]; !ok {
		return fmt.Errorf("token config: algorithm %q is not allowed", c.Algorithm)
	}
	return nil
}

// JWTIssuer implements ports.TokenIssuer with HMAC-signed JWTs carrying a
// subject and an absolute expiry.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	method *jwt.SigningMethodHMAC
}

// NewJWTIssuer validates cfg and returns an issuer. It never defers a config
// problem to the first Issue call.
func NewJWTIssuer(cfg TokenConfig) (*JWTIssuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &JWTIssuer{
		secret: secret,
		ttl:    cfg.TTL,
		method: AllowedAlgorithms[cfg.Algorithm],
	}, nil
}

// TTL returns the lifetime of issued tokens.
func (i *JWTIssuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for subject that expires at now + TTL.
func (i *JWTIssuer) Issue(subject string, now time.Time) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("issue token: %w", domain.ErrInvalidInput)
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm and expiry of token as of now and
// returns its subject.
func (i *JWTIssuer) Verify(token string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, i.keyFunc,
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTokenAlgorithmMismatch):
			return "", domain.ErrTokenAlgorithmMismatch
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		default:
			return "", fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
		}
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}

func (i *JWTIssuer) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != i.method.Alg() {
		return nil, domain.ErrTokenAlgorithmMismatch
	}
	return i.secret, nil
}
