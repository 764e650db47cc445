package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/salary-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantMsg   string
		challenge bool
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, "invalid input", false},
		{"invalid input reason", fmt.Errorf("%w: password longer than 72 bytes", domain.ErrInvalidInput), http.StatusBadRequest, "invalid input: password longer than 72 bytes", false},
		{"duplicate", fmt.Errorf("register: %w", domain.ErrDuplicateUsername), http.StatusUnprocessableEntity, "username already exists", false},
		{"bad credentials", domain.ErrAuthenticationFailed, http.StatusUnauthorized, "incorrect username or password", true},
		{"expired", domain.ErrTokenExpired, http.StatusUnauthorized, "token expired", true},
		{"invalid token", fmt.Errorf("%w: signature is invalid", domain.ErrTokenInvalid), http.StatusUnauthorized, "could not validate credentials", true},
		{"alg mismatch", domain.ErrTokenAlgorithmMismatch, http.StatusUnauthorized, "could not validate credentials", true},
		{"unknown subject", domain.ErrUnknownSubject, http.StatusUnauthorized, "could not validate credentials", true},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden", false},
		{"no salary", domain.ErrSalaryNotFound, http.StatusNotFound, "salary not found", false},
		{"echo 401", echo.NewHTTPError(http.StatusUnauthorized, "not authenticated"), http.StatusUnauthorized, "not authenticated", true},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error", false},
	}

	handler := NewHTTPErrorHandler(zerolog.New(io.Discard))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("expected %q, got %q", tt.wantMsg, body.Error)
			}
			got := rec.Header().Get("WWW-Authenticate")
			if tt.challenge && got != "Bearer" {
				t.Fatalf("expected Bearer challenge, got %q", got)
			}
			if !tt.challenge && got != "" {
				t.Fatalf("unexpected challenge %q", got)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.New(io.Discard))(domain.ErrForbidden, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %d %q", rec.Code, rec.Body.String())
	}
}
