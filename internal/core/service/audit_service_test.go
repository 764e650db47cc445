package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/salary-api/internal/core/domain"
)

type stubAuditRepo struct {
	insertErr error
	inserted  []*domain.AuthEvent
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, e *domain.AuthEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, e)
	return nil
}

func TestAuditService_Record_Success(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	event := domain.AuthEvent{Kind: domain.AuthEventLoginFailed, Username: "alice", OccurredAt: time.Now()}
	if err := svc.Record(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.inserted) != 1 || repo.inserted[0].Username != "alice" {
		t.Fatalf("expected event persisted, got %+v", repo.inserted)
	}
}

func TestAuditService_Record_RejectsUnknownKind(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.AuthEvent{Kind: "password_dumped", OccurredAt: time.Now()})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(repo.inserted) != 0 {
		t.Fatal("invalid event must not be persisted")
	}
}

func TestAuditService_Record_RequiresTimestamp(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{}, zerolog.Nop())

	if err := svc.Record(context.Background(), domain.AuthEvent{Kind: domain.AuthEventRegistered}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuditService_Record_RepoError(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("write conflict")}
	svc := NewAuditService(repo, zerolog.Nop())

	err := svc.Record(context.Background(), domain.AuthEvent{Kind: domain.AuthEventRegistered, OccurredAt: time.Now()})
	if err == nil {
		t.Fatal("expected error when repo fails, got nil")
	}
}
