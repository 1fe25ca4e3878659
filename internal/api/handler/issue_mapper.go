package handler

import (
	"time"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

// toIssueResponse serializes dates as ISO-8601 text and the identity as hex.
func toIssueResponse(issue *domain.Issue) issueResponse {
	comments := make([]commentResponse, len(issue.Comments))
	for i, c := range issue.Comments {
		comments[i] = commentResponse{
			Author: c.Author,
			Text:   c.Text,
			Date:   c.Date.UTC().Format(time.RFC3339),
		}
	}
	return issueResponse{
		ID:          issue.ID,
		Title:       issue.Title,
		Description: issue.Description,
		Type:        issue.Type,
		Location:    issue.Location,
		Reporter:    issue.Reporter,
		Date:        issue.Date.UTC().Format(time.RFC3339),
		Status:      issue.Status,
		AssignedTo:  issue.AssignedTo,
		Comments:    comments,
		PhotoURL:    issue.PhotoURL,
	}
}

func toIssueListResponse(issues []*domain.Issue) []issueResponse {
	out := make([]issueResponse, len(issues))
	for i, issue := range issues {
		out[i] = toIssueResponse(issue)
	}
	return out
}

func toAdminAccountResponse(u *domain.User) adminAccountResponse {
	return adminAccountResponse{
		ID:       u.ID,
		Username: u.Username,
		Role:     u.Role,
		Address:  u.Address,
		Status:   u.Status,
	}
}
