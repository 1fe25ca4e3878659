package domain

import "errors"

// Roles a user can hold. RoleGuest is only ever a fallback claim for tokens
// whose user no longer resolves; it is never persisted.
const (
	RoleResident = "resident"
	RoleService  = "service"
	RoleAdmin    = "admin"
	RoleGuest    = "guest"
)

// Account approval states. Residents and service staff are approved at
// creation; admin accounts other than the master admin start pending.
const (
	StatusApproved = "approved"
	StatusPending  = "pending"
	StatusRejected = "rejected"
)

// MasterAdminUsername is the single distinguished administrator account.
// It is always approved and can never be targeted by the approval workflow.
const MasterAdminUsername = "admin"

var ErrMissingCredentials = errors.New("username and password are required")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserExists = errors.New("username already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrAccountPending = errors.New("account pending admin approval")
var ErrAccountRejected = errors.New("account rejected")
var ErrNoFieldsToUpdate = errors.New("no fields to update")
var ErrForbidden = errors.New("access forbidden")
var ErrTooManyAttempts = errors.New("too many login attempts")
var ErrInvalidAction = errors.New("invalid approval action")
var ErrAdminNotFound = errors.New("admin user not found")
var ErrMasterAdminImmutable = errors.New("cannot modify the master admin account")

// User models an account in the portal.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string
	Address      string
	Status       string
}

// ValidRole reports whether r is one of the persistable roles.
func ValidRole(r string) bool {
	return r == RoleResident || r == RoleService || r == RoleAdmin
}

// InitialStatus returns the status a newly registered account starts in.
// Only non-master admin accounts go through the approval workflow.
func InitialStatus(username, role string) string {
	if role == RoleAdmin && username != MasterAdminUsername {
		return StatusPending
	}
	return StatusApproved
}
