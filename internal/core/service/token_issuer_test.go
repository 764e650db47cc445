package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/salary-api/internal/core/domain"
)

var issuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestIssuer(t *testing.T) *JWTIssuer {
	t.Helper()
	iss, err := NewJWTIssuer(TokenConfig{
		Secret:    []byte("test-secret"),
		TTL:       30 * time.Minute,
		Algorithm: "HS256",
	})
	require.NoError(t, err)
	return iss
}

func TestTokenConfig_Validate(t *testing.T) {
	valid := TokenConfig{Secret: []byte("k"), TTL: time.Minute, Algorithm: "HS512"}
	require.NoError(t, valid.Validate())

	cases := map[string]TokenConfig{
		"empty secret":   {TTL: time.Minute, Algorithm: "HS256"},
		"zero ttl":       {Secret: []byte("k"), Algorithm: "HS256"},
		"negative ttl":   {Secret: []byte("k"), TTL: -time.Minute, Algorithm: "HS256"},
		"none algorithm": {Secret: []byte("k"), TTL: time.Minute, Algorithm: "none"},
		"asymmetric":     {Secret: []byte("k"), TTL: time.Minute, Algorithm: "RS256"},
		"empty alg":      {Secret: []byte("k"), TTL: time.Minute},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
			_, err := NewJWTIssuer(cfg)
			assert.Error(t, err)
		})
	}
}

func TestJWTIssuer_IssueThenVerify(t *testing.T) {
	iss := newTestIssuer(t)

	token, err := iss.Issue("alice", issuedAt)
	require.NoError(t, err)

	subject, err := iss.Verify(token, issuedAt)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestJWTIssuer_ClaimsCarryAbsoluteExpiry(t *testing.T) {
	iss := newTestIssuer(t)

	token, err := iss.Issue("alice", issuedAt)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, issuedAt.Add(30*time.Minute).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestJWTIssuer_ExpiryBoundary(t *testing.T) {
	iss := newTestIssuer(t)
	expiry := issuedAt.Add(iss.TTL())

	token, err := iss.Issue("alice", issuedAt)
	require.NoError(t, err)

	_, err = iss.Verify(token, expiry.Add(-time.Second))
	assert.NoError(t, err)

	_, err = iss.Verify(token, expiry)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)

	_, err = iss.Verify(token, expiry.Add(time.Hour))
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
}

func TestJWTIssuer_WrongSecret(t *testing.T) {
	iss := newTestIssuer(t)
	other, err := NewJWTIssuer(TokenConfig{Secret: []byte("other"), TTL: time.Hour, Algorithm: "HS256"})
	require.NoError(t, err)

	token, err := other.Issue("alice", issuedAt)
	require.NoError(t, err)

	_, err = iss.Verify(token, issuedAt)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTIssuer_TamperedPayload(t *testing.T) {
	iss := newTestIssuer(t)
	token, err := iss.Issue("alice", issuedAt)
	require.NoError(t, err)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "mallory",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	spliced := parts[0] + "." + forgedParts[1] + "." + parts[2]

	_, err = iss.Verify(spliced, issuedAt)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTIssuer_MalformedToken(t *testing.T) {
	iss := newTestIssuer(t)

	for _, tok := range []string{"", "not-a-token", "a.b.c", "not.a.jwt"} {
		_, err := iss.Verify(tok, issuedAt)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, "token %q", tok)
	}
}

func TestJWTIssuer_AlgorithmMismatch(t *testing.T) {
	iss := newTestIssuer(t)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = iss.Verify(hs512, issuedAt)
	assert.ErrorIs(t, err, domain.ErrTokenAlgorithmMismatch)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = iss.Verify(unsigned, issuedAt)
	assert.ErrorIs(t, err, domain.ErrTokenAlgorithmMismatch)
}

func TestJWTIssuer_RequiresExpiryAndSubject(t *testing.T) {
	iss := newTestIssuer(t)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = iss.Verify(noExp, issuedAt)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = iss.Verify(noSub, issuedAt)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestJWTIssuer_IssueRejectsEmptySubject(t *testing.T) {
	iss := newTestIssuer(t)

	_, err := iss.Issue("", issuedAt)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestJWTIssuer_ConfigIsCopied(t *testing.T) {
	secret := []byte("test-secret")
	iss, err := NewJWTIssuer(TokenConfig{Secret: secret, TTL: time.Hour, Algorithm: "HS256"})
	require.NoError(t, err)

	token, err := iss.Issue("alice", issuedAt)
	require.NoError(t, err)

	secret[0] = 'X'

	_, err = iss.Verify(token, issuedAt)
	assert.NoError(t, err)
}
