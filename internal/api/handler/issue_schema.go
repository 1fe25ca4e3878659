package handler

import "encoding/json"

type createIssueRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Type        string `json:"type"        validate:"required"`
	Location    string `json:"location"    validate:"required"`
	PhotoURL    string `json:"photoUrl"`
}

// optionalString distinguishes an absent JSON key from one present with a
// null or empty value. Absent keys leave the issue field unchanged; a
// present-but-empty assignedTo means "unassign".
type optionalString struct {
	Set   bool
	Value string
}

func (o *optionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

type updateIssueRequest struct {
	AssignedTo optionalString `json:"assignedTo"`
	Status     optionalString `json:"status"`
	Comment    string         `json:"comment"`
}

type commentResponse struct {
	Author string `json:"author"`
	Text   string `json:"text"`
	Date   string `json:"date"`
}

// issueResponse keeps the original portal's wire names, most visibly "_id"
// and ISO-8601 date strings.
type issueResponse struct {
	ID          string            `json:"_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        string            `json:"type"`
	Location    string            `json:"location"`
	Reporter    string            `json:"reporter"`
	Date        string            `json:"date"`
	Status      string            `json:"status"`
	AssignedTo  *string           `json:"assignedTo"`
	Comments    []commentResponse `json:"comments"`
	PhotoURL    string            `json:"photoUrl"`
}

// adminAccountResponse is the master admin's view of an admin account.
// Password hashes are stripped at the repository and never serialized.
type adminAccountResponse struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Address  string `json:"address"`
	Status   string `json:"status"`
}
