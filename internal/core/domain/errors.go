package domain

import "errors"

// Registration and input errors.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrUserNotFound      = errors.New("user not found")
)

// ErrAuthenticationFailed is returned for every bad-credentials path. It never
// says whether the username or the password was wrong.
var ErrAuthenticationFailed = errors.New("incorrect username or password")

// Token errors. Callers recover only by authenticating again.
var (
	ErrTokenExpired           = errors.New("token expired")
	ErrTokenInvalid           = errors.New("invalid token")
	ErrTokenAlgorithmMismatch = errors.New("unexpected token signing algorithm")
)

// Authorization errors. ErrUnknownSubject is an authentication failure (401);
// ErrForbidden means the principal is known but not entitled (403).
var (
	ErrUnknownSubject = errors.New("token subject no longer exists")
	ErrForbidden      = errors.New("access forbidden")
)

// Hasher faults. These are server-side problems, never credential errors.
var (
	ErrHashing       = errors.New("password hashing failed")
	ErrMalformedHash = errors.New("stored password hash is malformed")
)

var ErrSalaryNotFound = errors.New("salary not found")

// IsUnauthenticated reports whether err means the caller is not authenticated.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrAuthenticationFailed) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenInvalid) ||
		errors.Is(err, ErrTokenAlgorithmMismatch) ||
		errors.Is(err, ErrUnknownSubject)
}
