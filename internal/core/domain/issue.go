package domain

import (
	"errors"
	"time"
)

// IssueStatusNew is the status every issue starts in. Beyond the default the
// status field is free-form text chosen by admin/service staff.
const IssueStatusNew = "New"

var ErrIssueNotFound = errors.New("issue not found")
var ErrInvalidIssueID = errors.New("invalid issue id format")

// Comment is a single append-only note on an issue. Comments are never
// edited, reordered or deleted.
type Comment struct {
	Author string
	Text   string
	Date   time.Time
}

// Issue is the core complaint aggregate. Title, description, type, location,
// reporter and date are immutable after creation; status, assignment and the
// comment list are mutable by admin/service staff only.
type Issue struct {
	ID          string
	Title       string
	Description string
	Type        string
	Location    string
	Reporter    string
	Date        time.Time
	Status      string
	AssignedTo  *string // nil means unassigned
	Comments    []Comment
	PhotoURL    string
}
