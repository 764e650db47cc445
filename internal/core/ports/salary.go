package ports

import (
	"context"

	"github.com/99minutos/salary-api/internal/core/domain"
)

// SalaryRepository defines persistence operations for salary records.
type SalaryRepository interface {
	// FindByOwner returns domain.ErrSalaryNotFound when the user has no record.
	FindByOwner(ctx context.Context, owner string) (*domain.Salary, error)
}

// SalaryService reads the salary of an already authorized principal.
type SalaryService interface {
	GetSalary(ctx context.Context, principal *domain.User) (*domain.Salary, error)
}
