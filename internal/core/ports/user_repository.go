package ports

import (
	"context"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// username is already taken (enforced by a unique index).
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateAddress(ctx context.Context, username, address string) error
	UpdateStatus(ctx context.Context, username, status string) error
	// ListByRole returns all users holding role, excluding excludeUsername.
	// Password hashes are not populated on the returned users.
	ListByRole(ctx context.Context, role, excludeUsername string) ([]*domain.User, error)
}
