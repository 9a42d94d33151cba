package users

import (
	"context"
	"time"
)

// RepositoryPort abstracts user persistence for services and the SSO flow.
type RepositoryPort interface {
	FindActiveByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}

// Service wraps user lookups.
type Service struct {
	repo RepositoryPort
}

// NewService constructs a Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// FindActiveByEmail resolves an active user by email.
func (s *Service) FindActiveByEmail(ctx context.Context, email string) (User, error) {
	return s.repo.FindActiveByEmail(ctx, email)
}

// GetByID fetches a user by identifier.
func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// RecordLogin stamps the user's last login.
func (s *Service) RecordLogin(ctx context.Context, id int64, at time.Time) error {
	return s.repo.TouchLastLogin(ctx, id, at)
}
