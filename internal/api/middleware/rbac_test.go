package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

func runGuard(t *testing.T, mw echo.MiddlewareFunc, username, role string) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextUsername, username)
	c.Set(ContextRole, role)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	return mw(next)(c)
}

func TestRBAC_AllowsListedRoles(t *testing.T) {
	mw := RBAC(domain.RoleAdmin, domain.RoleService)

	for _, role := range []string{domain.RoleAdmin, domain.RoleService} {
		if err := runGuard(t, mw, "someone", role); err != nil {
			t.Fatalf("role %q must pass, got %v", role, err)
		}
	}
}

func TestRBAC_RefusesOtherRoles(t *testing.T) {
	mw := RBAC(domain.RoleAdmin, domain.RoleService)

	for _, role := range []string{domain.RoleResident, domain.RoleGuest, ""} {
		err := runGuard(t, mw, "someone", role)
		he := httpError(t, err)
		if he.Code != http.StatusForbidden {
			t.Fatalf("role %q: expected 403, got %d", role, he.Code)
		}
		if he.Message != "Access forbidden: Insufficient permissions." {
			t.Fatalf("unexpected message: %v", he.Message)
		}
	}
}

// The master admin check requires both the distinguished identity and the
// admin role; either alone is refused with the route's own message.
func TestMasterAdmin_RequiresIdentityAndRole(t *testing.T) {
	const msg = "Access forbidden: Only the master admin can view this page."
	mw := MasterAdmin(msg)

	if err := runGuard(t, mw, domain.MasterAdminUsername, domain.RoleAdmin); err != nil {
		t.Fatalf("master admin must pass, got %v", err)
	}

	cases := []struct {
		username string
		role     string
	}{
		{"clerk", domain.RoleAdmin},
		{domain.MasterAdminUsername, domain.RoleResident},
		{"alice", domain.RoleResident},
	}
	for _, tc := range cases {
		err := runGuard(t, mw, tc.username, tc.role)
		he := httpError(t, err)
		if he.Code != http.StatusForbidden {
			t.Fatalf("%s/%s: expected 403, got %d", tc.username, tc.role, he.Code)
		}
		if he.Message != msg {
			t.Fatalf("%s/%s: unexpected message: %v", tc.username, tc.role, he.Message)
		}
	}
}
