package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cityworks/complaints-api/internal/core/domain"
	"github.com/cityworks/complaints-api/internal/core/ports"
)

// ProfileService reads and updates the caller's own account record.
type ProfileService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewProfileService(repo ports.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger}
}

func (s *ProfileService) Profile(ctx context.Context, username string) (*domain.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// UpdateProfile applies the address change and returns the refreshed record.
// Only the address is mutable through this path.
func (s *ProfileService) UpdateProfile(ctx context.Context, username string, address *string) (*domain.User, error) {
	if _, err := s.repo.FindByUsername(ctx, username); err != nil {
		return nil, err
	}

	if address == nil {
		return nil, domain.ErrNoFieldsToUpdate
	}

	if err := s.repo.UpdateAddress(ctx, username, *address); err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Msg("profile updated")
	return s.repo.FindByUsername(ctx, username)
}
