package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cityworks/complaints-api/internal/api/metrics"
	"github.com/cityworks/complaints-api/internal/core/domain"
	"github.com/cityworks/complaints-api/internal/core/ports"
)

// IssueService implements complaint listing, creation and triage updates.
type IssueService struct {
	repo   ports.IssueRepository
	logger zerolog.Logger
}

func NewIssueService(repo ports.IssueRepository, logger zerolog.Logger) *IssueService {
	return &IssueService{repo: repo, logger: logger}
}

// List scopes visibility by role: admin and service staff see every issue,
// residents only the ones they reported. Any other role is forbidden.
func (s *IssueService) List(ctx context.Context, username, role string) ([]*domain.Issue, error) {
	switch role {
	case domain.RoleAdmin, domain.RoleService:
		return s.repo.List(ctx, "")
	case domain.RoleResident:
		return s.repo.List(ctx, username)
	default:
		return nil, domain.ErrForbidden
	}
}

func (s *IssueService) Create(ctx context.Context, input ports.CreateIssueInput) (*domain.Issue, error) {
	issue := &domain.Issue{
		Title:       input.Title,
		Description: input.Description,
		Type:        input.Type,
		Location:    input.Location,
		Reporter:    input.Reporter,
		Date:        time.Now().UTC(),
		Status:      domain.IssueStatusNew,
		AssignedTo:  nil,
		Comments:    []domain.Comment{},
		PhotoURL:    input.PhotoURL,
	}

	id, err := s.repo.Create(ctx, issue)
	if err != nil {
		s.logger.Error().Err(err).Str("reporter", input.Reporter).Msg("failed to create issue")
		return nil, err
	}
	issue.ID = id

	metrics.IssuesCreatedTotal.WithLabelValues(input.Type).Inc()
	s.logger.Info().Str("issue_id", id).Str("reporter", input.Reporter).Str("type", input.Type).Msg("issue created")

	return issue, nil
}

// Update applies the partial field update and/or comment append, then
// refetches so the caller always sees the stored state.
func (s *IssueService) Update(ctx context.Context, input ports.UpdateIssueInput) (*domain.Issue, error) {
	if _, err := s.repo.FindByID(ctx, input.ID); err != nil {
		return nil, err
	}

	update := ports.IssueFieldUpdate{}
	if input.AssignedTo != nil {
		update.SetAssignedTo = true
		// An explicit empty value means unassigned, stored as null.
		if *input.AssignedTo != "" {
			update.AssignedTo = input.AssignedTo
		}
	}
	if input.Status != nil {
		update.SetStatus = true
		update.Status = *input.Status
	}

	if !update.Empty() {
		if err := s.repo.SetFields(ctx, input.ID, update); err != nil {
			return nil, err
		}
		metrics.IssueUpdatesTotal.Inc()
	}

	if input.Comment != "" {
		comment := domain.Comment{
			Author: input.Actor,
			Text:   input.Comment,
			Date:   time.Now().UTC(),
		}
		if err := s.repo.AppendComment(ctx, input.ID, comment); err != nil {
			return nil, err
		}
		metrics.CommentsAppendedTotal.Inc()
	}

	s.logger.Info().Str("issue_id", input.ID).Str("actor", input.Actor).Msg("issue updated")

	return s.repo.FindByID(ctx, input.ID)
}
