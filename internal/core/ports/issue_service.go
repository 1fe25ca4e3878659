package ports

import (
	"context"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

// CreateIssueInput carries all data needed to file a new complaint.
// Reporter is the authenticated identity, never client-supplied.
type CreateIssueInput struct {
	Reporter    string
	Title       string
	Description string
	Type        string
	Location    string
	PhotoURL    string
}

// UpdateIssueInput is the partial update applied by admin/service staff.
// A nil AssignedTo/Status leaves the field unchanged; a non-nil empty
// AssignedTo stores an explicit unassigned marker. A non-empty Comment is
// appended independently of the field updates.
type UpdateIssueInput struct {
	ID         string
	Actor      string
	AssignedTo *string
	Status     *string
	Comment    string
}

// IssueService defines use-case operations for complaints.
type IssueService interface {
	// List returns issues visible to the caller: admin/service see all,
	// residents only their own reports, anything else is forbidden.
	List(ctx context.Context, username, role string) ([]*domain.Issue, error)
	Create(ctx context.Context, input CreateIssueInput) (*domain.Issue, error)
	// Update applies field updates and/or a comment append, then returns
	// the fully refreshed record.
	Update(ctx context.Context, input UpdateIssueInput) (*domain.Issue, error)
}
