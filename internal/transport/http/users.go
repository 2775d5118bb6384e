package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/middleware"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// RegisterUser creates a user account. Admin only; the role gate runs in
// middleware.
func (s *Server) RegisterUser(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}
	if req.Username == "" || req.Password == "" || !domain.ValidRole(req.Role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Username, password and a valid role are required."})
	}

	ctx := c.Request().Context()
	exists, err := s.Users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return internalError(c, "Failed to check user existence.", err)
	}
	if exists {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Username may already be taken."})
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return internalError(c, "Error hashing password.", err)
	}

	user := &domain.User{
		Username: req.Username,
		Password: hashed,
		Role:     req.Role,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		// Unique-index race between the existence check and the insert.
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Username may already be taken."})
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User created successfully!"})
}

// Login checks username, claimed role and password together and never
// reveals which of them failed.
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body."})
	}

	user, err := s.Users.FindByUsernameAndRole(c.Request().Context(), req.Username, req.Role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Invalid credentials."})
		}
		return internalError(c, "Error during authentication.", err)
	}

	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Invalid credentials."})
	}

	token, err := auth.GenerateToken(user, s.SecretKey)
	if err != nil {
		return internalError(c, "Failed to generate token.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":    token,
		"role":     user.Role,
		"username": user.Username,
	})
}

// ListUsers returns id+username pairs, optionally filtered by role. Admin
// only.
func (s *Server) ListUsers(c echo.Context) error {
	users, err := s.Users.List(c.Request().Context(), c.QueryParam("role"))
	if err != nil {
		return internalError(c, "Failed to fetch users.", err)
	}

	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, userSummary{ID: u.ID, Username: u.Username})
	}
	return c.JSON(http.StatusOK, out)
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *Server) Logout(c echo.Context) error {
	claims := middleware.Identity(c)
	token := middleware.Token(c)

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if err := s.Blacklist.BanToken(c.Request().Context(), token, ttl); err != nil {
		return internalError(c, "Failed to revoke token.", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Logged out successfully"})
}

// Revalidate issues a fresh token for an authentic identity, accepting an
// expired token as long as neither the user nor the token is blacklisted.
func (s *Server) Revalidate(c echo.Context) error {
	tokenString, err := auth.BearerFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationRequired) {
			return c.JSON(http.StatusForbidden, echo.Map{"message": "A token is required for authentication"})
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid Token"})
	}

	claims, err := auth.ParseAndValidateToken(tokenString, s.SecretKey, jwt.WithoutClaimsValidation())
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid Token"})
	}

	ctx := c.Request().Context()
	if err := s.Blacklist.CheckUser(ctx, claims.ID); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "User is banned"})
	}
	if err := s.Blacklist.CheckToken(ctx, tokenString); err != nil {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Token is revoked"})
	}

	token, err := auth.GenerateToken(&domain.User{
		ID:       claims.ID,
		Username: claims.Username,
		Role:     claims.Role,
	}, s.SecretKey)
	if err != nil {
		return internalError(c, "Failed to generate new token.", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"token":   token,
		"message": "Token revalidated successfully",
	})
}

// BanUser puts a user id on the blacklist; the auth gate rejects them from
// the next request on. Admin only.
func (s *Server) BanUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid ID"})
	}
	if err := s.Blacklist.BanUser(c.Request().Context(), uint(id)); err != nil {
		return internalError(c, "Failed to ban user.", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "User banned successfully"})
}
