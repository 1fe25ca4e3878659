package ports

import (
	"context"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

// IssueFieldUpdate is a partial update of an issue's mutable fields.
// The Set flags distinguish "leave unchanged" from "write this value";
// a nil AssignedTo with SetAssignedTo=true stores an explicit null
// (unassigned) rather than skipping the field.
type IssueFieldUpdate struct {
	SetAssignedTo bool
	AssignedTo    *string
	SetStatus     bool
	Status        string
}

// Empty reports whether the update would touch no fields.
func (u IssueFieldUpdate) Empty() bool {
	return !u.SetAssignedTo && !u.SetStatus
}

// IssueRepository defines persistence operations for issues.
type IssueRepository interface {
	// Create inserts the issue and returns its generated identity.
	Create(ctx context.Context, issue *domain.Issue) (string, error)
	// FindByID returns domain.ErrInvalidIssueID for malformed ids and
	// domain.ErrIssueNotFound when no document matches.
	FindByID(ctx context.Context, id string) (*domain.Issue, error)
	// List returns issues sorted by date descending. An empty reporter
	// means no filter (all issues).
	List(ctx context.Context, reporter string) ([]*domain.Issue, error)
	SetFields(ctx context.Context, id string, update IssueFieldUpdate) error
	// AppendComment pushes the comment onto the end of the issue's comment
	// list. The store's per-document atomicity serializes concurrent appends.
	AppendComment(ctx context.Context, id string, comment domain.Comment) error
}
