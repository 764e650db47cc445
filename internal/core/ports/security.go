package ports

import "time"

// CredentialHasher hashes and verifies passwords.
type CredentialHasher interface {
	Hash(plaintext string) (string, error)
	// Verify returns false, nil for a well-formed hash that does not match.
	Verify(plaintext, hash string) (bool, error)
}

// TokenIssuer builds and validates signed bearer tokens.
type TokenIssuer interface {
	Issue(subject string, now time.Time) (string, error)
	// Verify returns the subject claim of a valid token.
	Verify(token string, now time.Time) (string, error)
	TTL() time.Duration
}
