package domain

import "time"

// AuthEventKind classifies an entry of the authentication audit trail.
type AuthEventKind string

const (
	AuthEventRegistered     AuthEventKind = "registered"
	AuthEventLoginSucceeded AuthEventKind = "login_succeeded"
	AuthEventLoginFailed    AuthEventKind = "login_failed"
	AuthEventAccessDenied   AuthEventKind = "access_denied"
)

// Valid reports whether k is a known event kind.
func (k AuthEventKind) Valid() bool {
	switch k {
	case AuthEventRegistered, AuthEventLoginSucceeded, AuthEventLoginFailed, AuthEventAccessDenied:
		return true
	}
	return false
}

// AuthEvent records something that happened to an account. It never carries
// credentials.
type AuthEvent struct {
	Kind       AuthEventKind
	Username   string
	Resource   string // owner of the resource involved, if any
	OccurredAt time.Time
}
