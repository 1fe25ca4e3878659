package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/cityworks/complaints-api/internal/core/domain"
	"github.com/cityworks/complaints-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub issue repository
// ---------------------------------------------------------------------------

type stubIssueRepo struct {
	issues map[string]*domain.Issue
	nextID int
}

func newStubIssueRepo() *stubIssueRepo {
	return &stubIssueRepo{issues: make(map[string]*domain.Issue)}
}

func cloneIssue(i *domain.Issue) *domain.Issue {
	clone := *i
	clone.Comments = append([]domain.Comment(nil), i.Comments...)
	if i.AssignedTo != nil {
		v := *i.AssignedTo
		clone.AssignedTo = &v
	}
	return &clone
}

func (r *stubIssueRepo) Create(_ context.Context, issue *domain.Issue) (string, error) {
	r.nextID++
	id := fmt.Sprintf("%024d", r.nextID)
	stored := cloneIssue(issue)
	stored.ID = id
	r.issues[id] = stored
	return id, nil
}

// FindByID mirrors the Mongo repository's id handling: 24 hex chars or bust.
func (r *stubIssueRepo) FindByID(_ context.Context, id string) (*domain.Issue, error) {
	if len(id) != 24 {
		return nil, domain.ErrInvalidIssueID
	}
	issue, ok := r.issues[id]
	if !ok {
		return nil, domain.ErrIssueNotFound
	}
	return cloneIssue(issue), nil
}

func (r *stubIssueRepo) List(_ context.Context, reporter string) ([]*domain.Issue, error) {
	out := make([]*domain.Issue, 0)
	for _, issue := range r.issues {
		if reporter != "" && issue.Reporter != reporter {
			continue
		}
		out = append(out, cloneIssue(issue))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *stubIssueRepo) SetFields(_ context.Context, id string, update ports.IssueFieldUpdate) error {
	if len(id) != 24 {
		return domain.ErrInvalidIssueID
	}
	issue, ok := r.issues[id]
	if !ok {
		return domain.ErrIssueNotFound
	}
	if update.SetAssignedTo {
		issue.AssignedTo = update.AssignedTo
	}
	if update.SetStatus {
		issue.Status = update.Status
	}
	return nil
}

func (r *stubIssueRepo) AppendComment(_ context.Context, id string, comment domain.Comment) error {
	if len(id) != 24 {
		return domain.ErrInvalidIssueID
	}
	issue, ok := r.issues[id]
	if !ok {
		return domain.ErrIssueNotFound
	}
	issue.Comments = append(issue.Comments, comment)
	return nil
}

func createInput(reporter string) ports.CreateIssueInput {
	return ports.CreateIssueInput{
		Reporter:    reporter,
		Title:       "Broken streetlight",
		Description: "Streetlight out on the corner",
		Type:        "electrical",
		Location:    "5th and Main",
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestIssueService_List_RoleVisibility(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)

	_, _ = svc.Create(context.Background(), createInput("alice"))
	_, _ = svc.Create(context.Background(), createInput("alice"))
	_, _ = svc.Create(context.Background(), createInput("bob"))

	all, err := svc.List(context.Background(), "staff", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("admin must see all issues, got %d", len(all))
	}

	all, err = svc.List(context.Background(), "crew", domain.RoleService)
	if err != nil {
		t.Fatalf("service list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("service staff must see all issues, got %d", len(all))
	}

	own, err := svc.List(context.Background(), "alice", domain.RoleResident)
	if err != nil {
		t.Fatalf("resident list failed: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("resident must see only own issues, got %d", len(own))
	}
	for _, issue := range own {
		if issue.Reporter != "alice" {
			t.Fatalf("resident list leaked issue from %q", issue.Reporter)
		}
	}
}

func TestIssueService_List_UnknownRoleForbidden(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)

	if _, err := svc.List(context.Background(), "nobody", domain.RoleGuest); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestIssueService_List_NewestFirst(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		_, _ = repo.Create(context.Background(), &domain.Issue{
			Reporter: "alice",
			Date:     now.Add(time.Duration(i) * time.Minute),
		})
	}

	issues, err := svc.List(context.Background(), "staff", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for i := 1; i < len(issues); i++ {
		if issues[i].Date.After(issues[i-1].Date) {
			t.Fatalf("issues not sorted newest first")
		}
	}
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestIssueService_Create_Defaults(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)

	issue, err := svc.Create(context.Background(), createInput("alice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issue.ID == "" {
		t.Fatalf("expected generated id")
	}
	if issue.Status != domain.IssueStatusNew {
		t.Fatalf("expected status %q, got %q", domain.IssueStatusNew, issue.Status)
	}
	if issue.AssignedTo != nil {
		t.Fatalf("new issue must be unassigned")
	}
	if issue.Comments == nil || len(issue.Comments) != 0 {
		t.Fatalf("new issue must have an empty comment list")
	}
	if issue.Date.IsZero() {
		t.Fatalf("date must be set by the server")
	}
	if issue.Reporter != "alice" {
		t.Fatalf("reporter must be the authenticated identity, got %q", issue.Reporter)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func strptr(s string) *string { return &s }

func TestIssueService_Update_InvalidID(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)

	_, err := svc.Update(context.Background(), ports.UpdateIssueInput{ID: "not-an-id", Actor: "staff"})
	if !errors.Is(err, domain.ErrInvalidIssueID) {
		t.Fatalf("expected ErrInvalidIssueID, got %v", err)
	}
}

func TestIssueService_Update_NotFound(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)

	_, err := svc.Update(context.Background(), ports.UpdateIssueInput{ID: "000000000000000000000099", Actor: "staff"})
	if !errors.Is(err, domain.ErrIssueNotFound) {
		t.Fatalf("expected ErrIssueNotFound, got %v", err)
	}
}

func TestIssueService_Update_StatusAndAssignment(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), createInput("alice"))

	updated, err := svc.Update(context.Background(), ports.UpdateIssueInput{
		ID:         created.ID,
		Actor:      "staff",
		AssignedTo: strptr("crew-7"),
		Status:     strptr("In Progress"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != "In Progress" {
		t.Fatalf("expected status update, got %q", updated.Status)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != "crew-7" {
		t.Fatalf("expected assignment, got %v", updated.AssignedTo)
	}
	// Immutable creation fields survive the update untouched.
	if updated.Title != created.Title || updated.Reporter != created.Reporter {
		t.Fatalf("immutable fields changed: %+v", updated)
	}
}

// An explicit empty assignedTo unassigns; an absent one leaves assignment alone.
func TestIssueService_Update_ExplicitUnassign(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), createInput("alice"))

	_, err := svc.Update(context.Background(), ports.UpdateIssueInput{
		ID: created.ID, Actor: "staff", AssignedTo: strptr("crew-7"),
	})
	if err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	// Status-only update must not touch the assignment.
	updated, err := svc.Update(context.Background(), ports.UpdateIssueInput{
		ID: created.ID, Actor: "staff", Status: strptr("Scheduled"),
	})
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if updated.AssignedTo == nil || *updated.AssignedTo != "crew-7" {
		t.Fatalf("absent assignedTo must leave assignment unchanged, got %v", updated.AssignedTo)
	}

	updated, err = svc.Update(context.Background(), ports.UpdateIssueInput{
		ID: created.ID, Actor: "staff", AssignedTo: strptr(""),
	})
	if err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
	if updated.AssignedTo != nil {
		t.Fatalf("empty assignedTo must store explicit unassigned, got %v", *updated.AssignedTo)
	}
}

func TestIssueService_Update_CommentAppendPreservesOrder(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), createInput("alice"))

	const n = 5
	for i := 0; i < n; i++ {
		_, err := svc.Update(context.Background(), ports.UpdateIssueInput{
			ID:      created.ID,
			Actor:   "staff",
			Comment: fmt.Sprintf("note %d", i),
		})
		if err != nil {
			t.Fatalf("append %d failed: %v", i, err)
		}
	}

	final, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("refetch failed: %v", err)
	}
	if len(final.Comments) != n {
		t.Fatalf("expected %d comments, got %d", n, len(final.Comments))
	}
	for i, c := range final.Comments {
		if c.Text != fmt.Sprintf("note %d", i) {
			t.Fatalf("comment order broken at %d: %q", i, c.Text)
		}
		if c.Author != "staff" {
			t.Fatalf("comment author must be the actor, got %q", c.Author)
		}
		if c.Date.IsZero() {
			t.Fatalf("comment date must be set")
		}
	}
}

// Field updates and comment append are independent branches; both apply in
// one call.
func TestIssueService_Update_FieldsAndCommentTogether(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), createInput("alice"))

	updated, err := svc.Update(context.Background(), ports.UpdateIssueInput{
		ID:      created.ID,
		Actor:   "staff",
		Status:  strptr("Resolved"),
		Comment: "fixed and verified",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != "Resolved" {
		t.Fatalf("expected status update, got %q", updated.Status)
	}
	if len(updated.Comments) != 1 || updated.Comments[0].Text != "fixed and verified" {
		t.Fatalf("expected appended comment, got %+v", updated.Comments)
	}
}

func TestIssueService_Update_NoChangesReturnsRecord(t *testing.T) {
	repo := newStubIssueRepo()
	svc := NewIssueService(repo, discardLogger)
	created, _ := svc.Create(context.Background(), createInput("alice"))

	updated, err := svc.Update(context.Background(), ports.UpdateIssueInput{ID: created.ID, Actor: "staff"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.IssueStatusNew || len(updated.Comments) != 0 {
		t.Fatalf("no-op update must leave the record unchanged: %+v", updated)
	}
}
