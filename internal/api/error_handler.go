package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

// messageResponse is the canonical error envelope for all API errors.
type messageResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their status codes and contract messages.
//   - Logs unexpected errors internally without leaking details to clients.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, messageResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, guard refusals).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors with contract messages.
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return http.StatusBadRequest, "Username and password are required."
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, "Invalid role. Must be 'resident', 'service' or 'admin'."
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Username already exists."
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid credentials."
	case errors.Is(err, domain.ErrAccountPending):
		return http.StatusForbidden, "Your account is pending admin approval."
	case errors.Is(err, domain.ErrAccountRejected):
		return http.StatusForbidden, "Your account has been rejected by an admin."
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "Too many login attempts. Please try again later."
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found."
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		return http.StatusBadRequest, "No fields to update."
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Access forbidden: Insufficient permissions."
	case errors.Is(err, domain.ErrInvalidIssueID):
		return http.StatusBadRequest, "Invalid Issue ID format."
	case errors.Is(err, domain.ErrIssueNotFound):
		return http.StatusNotFound, "Issue not found."
	case errors.Is(err, domain.ErrInvalidAction):
		return http.StatusBadRequest, "Invalid action. Must be 'approve' or 'reject'."
	case errors.Is(err, domain.ErrAdminNotFound):
		return http.StatusNotFound, "Admin user not found or not an admin role."
	case errors.Is(err, domain.ErrMasterAdminImmutable):
		return http.StatusForbidden, "Cannot modify the master admin account."
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error."
}
