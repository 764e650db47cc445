package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/salary-api/internal/core/domain"
)

type stubSalaryService struct {
	getFn func(ctx context.Context, principal *domain.User) (*domain.Salary, error)
}

func (s *stubSalaryService) GetSalary(ctx context.Context, principal *domain.User) (*domain.Salary, error) {
	return s.getFn(ctx, principal)
}

func TestSalaryHandler_Get_Success(t *testing.T) {
	e := newTestEcho()
	raise := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)
	stub := &stubSalaryService{
		getFn: func(ctx context.Context, principal *domain.User) (*domain.Salary, error) {
			if principal.Username != "alice" {
				t.Fatalf("unexpected principal %q", principal.Username)
			}
			return &domain.Salary{Owner: "alice", Amount: 5200.5, Currency: "USD", NextRaiseAt: raise}, nil
		},
	}
	h := NewSalaryHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/users/alice/salary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", &domain.User{Username: "alice"})

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp salaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Amount != 5200.5 || resp.Currency != "USD" || !resp.NextRaiseAt.Equal(raise) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestSalaryHandler_Get_NoPrincipal(t *testing.T) {
	e := newTestEcho()
	h := NewSalaryHandler(&stubSalaryService{
		getFn: func(ctx context.Context, principal *domain.User) (*domain.Salary, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/alice/salary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var he *echo.HTTPError
	if err := h.Get(c); !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestSalaryHandler_Get_NotFound(t *testing.T) {
	e := newTestEcho()
	h := NewSalaryHandler(&stubSalaryService{
		getFn: func(ctx context.Context, principal *domain.User) (*domain.Salary, error) {
			return nil, domain.ErrSalaryNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/alice/salary", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("principal", &domain.User{Username: "alice"})

	if err := h.Get(c); !errors.Is(err, domain.ErrSalaryNotFound) {
		t.Fatalf("expected ErrSalaryNotFound, got %v", err)
	}
}
