package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/99minutos/salary-api/internal/core/domain"
	"github.com/99minutos/salary-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record validates and persists a single audit event.
func (s *auditService) Record(ctx context.Context, event domain.AuthEvent) error {
	if !event.Kind.Valid() {
		return fmt.Errorf("record audit event: %w: unknown kind %q", domain.ErrInvalidInput, event.Kind)
	}
	if event.OccurredAt.IsZero() {
		return fmt.Errorf("record audit event: %w: missing timestamp", domain.ErrInvalidInput)
	}

	if err := s.repo.InsertEvent(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("kind", string(event.Kind)).
		Str("username", event.Username).
		Msg("audit event recorded")
	return nil
}
