package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cityworks/complaints-api/internal/api/metrics"
	"github.com/cityworks/complaints-api/internal/core/domain"
	"github.com/cityworks/complaints-api/internal/core/ports"
)

// LoginLimiter throttles repeated failed logins. A nil limiter disables
// throttling.
type LoginLimiter interface {
	Blocked(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
}

type AuthHandler struct {
	authService ports.AuthService
	limiter     LoginLimiter
}

func NewAuthHandler(authService ports.AuthService, limiter LoginLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

// Register creates a new account. Non-master admin registrations start
// pending and the response message says so.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload.")
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Address:  req.Address,
	})
	if err != nil {
		return err
	}

	msg := fmt.Sprintf("User %s registered successfully as %s.", user.Username, user.Role)
	if user.Status == domain.StatusPending {
		msg = fmt.Sprintf("User %s registered as %s. Awaiting admin approval.", user.Username, user.Role)
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// Login authenticates a user and returns a signed token plus the public
// account view.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      429   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload.")
	}

	ctx := c.Request().Context()

	if h.limiter != nil && req.Username != "" {
		// Fail open: a limiter outage must not lock everyone out.
		if blocked, err := h.limiter.Blocked(ctx, req.Username); err == nil && blocked {
			metrics.LoginsThrottledTotal.Inc()
			return domain.ErrTooManyAttempts
		}
	}

	token, user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if h.limiter != nil && err == domain.ErrInvalidCredentials {
			_ = h.limiter.RecordFailure(ctx, req.Username)
		}
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		User:        toUserResponse(user),
	})
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{Username: u.Username, Role: u.Role, Address: u.Address}
}
