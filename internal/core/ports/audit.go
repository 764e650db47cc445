package ports

import (
	"context"

	"github.com/99minutos/salary-api/internal/core/domain"
)

// AuditPublisher hands auth events to the audit pipeline. Publish must not
// block the request path.
type AuditPublisher interface {
	Publish(event domain.AuthEvent)
}

// AuditRepository persists audit events.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService records a single audit event.
type AuditService interface {
	Record(ctx context.Context, event domain.AuthEvent) error
}
