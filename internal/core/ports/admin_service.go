package ports

import (
	"context"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

// Admin approval actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// AdminService manages the admin approval workflow. Access is restricted to
// the master admin at the transport layer; the service additionally protects
// the master account itself from any status transition.
type AdminService interface {
	// ListAdmins returns all admin-role accounts except the master admin,
	// with password hashes stripped.
	ListAdmins(ctx context.Context) ([]*domain.User, error)
	// SetStatus approves or rejects an admin account and returns the
	// updated record.
	SetStatus(ctx context.Context, username, action string) (*domain.User, error)
}
