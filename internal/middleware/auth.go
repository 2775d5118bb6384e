package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	"taskboard/internal/auth/blacklist"
	"taskboard/internal/domain"
)

const (
	identityKey = "identity"
	tokenKey    = "token"
)

// Auth is the gate in front of every protected route: it extracts the
// bearer token, validates signature and expiry, rejects banned users and
// revoked tokens, and stores the identity for downstream handlers.
func Auth(secretKey string, bl blacklist.Blacklist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString, err := auth.BearerFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				if errors.Is(err, domain.ErrAuthenticationRequired) {
					return c.JSON(http.StatusForbidden, echo.Map{"message": "A token is required for authentication"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid Token"})
			}

			claims, err := auth.ParseAndValidateToken(tokenString, secretKey)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid Token"})
			}

			ctx := c.Request().Context()
			if err := bl.CheckUser(ctx, claims.ID); err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "User is banned"})
			}
			if err := bl.CheckToken(ctx, tokenString); err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Token is revoked"})
			}

			c.Set(identityKey, claims)
			c.Set(tokenKey, tokenString)
			return next(c)
		}
	}
}

// AdminRequired rejects callers whose token does not carry the admin role.
// It must run after Auth.
func AdminRequired() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Identity(c)
			if claims == nil || claims.Role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied."})
			}
			return next(c)
		}
	}
}

// Identity returns the claims stored by Auth, or nil on an unauthenticated
// request.
func Identity(c echo.Context) *auth.Claims {
	claims, _ := c.Get(identityKey).(*auth.Claims)
	return claims
}

// Token returns the raw bearer token stored by Auth.
func Token(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}
