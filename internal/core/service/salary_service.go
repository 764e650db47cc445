package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/99minutos/salary-api/internal/core/domain"
	"github.com/99minutos/salary-api/internal/core/ports"
)

type SalaryService struct {
	repo   ports.SalaryRepository
	logger zerolog.Logger
}

func NewSalaryService(repo ports.SalaryRepository, logger zerolog.Logger) *SalaryService {
	return &SalaryService{repo: repo, logger: logger}
}

// GetSalary returns the salary owned by principal. The principal must already
// have passed the owner guard.
func (s *SalaryService) GetSalary(ctx context.Context, principal *domain.User) (*domain.Salary, error) {
	if principal == nil || principal.Username == "" {
		return nil, domain.ErrForbidden
	}

	salary, err := s.repo.FindByOwner(ctx, principal.Username)
	if err != nil {
		if !errors.Is(err, domain.ErrSalaryNotFound) {
			s.logger.Error().Err(err).Str("username", principal.Username).Msg("failed to load salary")
		}
		return nil, err
	}

	// Never hand back a record owned by someone else.
	if !salary.OwnedBy(principal.Username) {
		s.logger.Error().Str("username", principal.Username).Str("owner", salary.Owner).Msg("salary owner mismatch")
		return nil, domain.ErrForbidden
	}
	return salary, nil
}
