package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/cityworks/complaints-api/internal/core/domain"
	"github.com/cityworks/complaints-api/internal/core/ports"
)

// AdminService implements the master-admin approval workflow.
type AdminService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewAdminService(repo ports.UserRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, logger: logger}
}

// ListAdmins returns every admin-role account except the master admin itself.
func (s *AdminService) ListAdmins(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListByRole(ctx, domain.RoleAdmin, domain.MasterAdminUsername)
}

// SetStatus transitions an admin account to approved or rejected. The master
// admin account can never be targeted, regardless of the action.
func (s *AdminService) SetStatus(ctx context.Context, username, action string) (*domain.User, error) {
	var status string
	switch action {
	case ports.ActionApprove:
		status = domain.StatusApproved
	case ports.ActionReject:
		status = domain.StatusRejected
	default:
		return nil, domain.ErrInvalidAction
	}

	target, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	if target.Role != domain.RoleAdmin {
		return nil, domain.ErrAdminNotFound
	}
	if target.Username == domain.MasterAdminUsername {
		return nil, domain.ErrMasterAdminImmutable
	}

	if err := s.repo.UpdateStatus(ctx, username, status); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("status", status).Msg("admin status updated")

	target.Status = status
	return target, nil
}
