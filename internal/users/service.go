package users

import (
	"context"

	"github.com/arcadia-store/arcadia/internal/shared"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	UpdateRole(ctx context.Context, id int64, role shared.Role) error
}

// Service handles user administration logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListUsers returns all accounts.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.ListUsers(ctx)
}

// UpdateRole assigns a role from the closed set. The change is only
// observed by the authorization gate at the user's next token
// refresh.
func (s *Service) UpdateRole(ctx context.Context, id int64, raw string) error {
	role, err := shared.ParseRole(raw)
	if err != nil {
		return err
	}
	return s.repo.UpdateRole(ctx, id, role)
}
