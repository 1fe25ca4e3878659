package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/cityworks/complaints-api/internal/core/domain"
)

// Context keys populated by Auth for downstream middleware and handlers.
const (
	ContextUsername = "username"
	ContextRole     = "role"
)

// Failure messages are part of the API contract: a missing or expired token
// answers 401, a token that fails signature verification answers 403.
const (
	msgMissingToken = "Missing or invalid token. Please log in."
	msgExpiredToken = "Token has expired. Please log in again."
	msgInvalidToken = "Signature verification failed. Invalid token."
)

// Auth validates the bearer JWT and injects identity claims into context.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgMissingToken)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, msgMissingToken)
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, msgExpiredToken)
				}
				return echo.NewHTTPError(http.StatusForbidden, msgInvalidToken)
			}

			username, _ := claims[ContextUsername].(string)
			if username == "" {
				return echo.NewHTTPError(http.StatusForbidden, msgInvalidToken)
			}
			role, _ := claims[ContextRole].(string)
			if role == "" {
				role = domain.RoleGuest
			}

			c.Set(ContextUsername, username)
			c.Set(ContextRole, role)

			return next(c)
		}
	}
}
