package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"taskboard/internal/domain"
)

// TokenTTL bounds the lifetime of every issued token.
const TokenTTL = 2 * time.Hour

type Claims struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// GenerateToken signs a token carrying the user's identity, valid for TokenTTL.
func GenerateToken(user *domain.User, secretKey string) (string, error) {
	claims := &Claims{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(TokenTTL).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// ParseAndValidateToken verifies the signature (and, unless overridden by a
// parser option, the expiry) and returns the embedded claims.
func ParseAndValidateToken(tokenString string, secretKey string, options ...jwt.ParserOption) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}, options...)

	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	return claims, nil
}

// BearerFromHeader pulls the raw token out of an Authorization header.
func BearerFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", domain.ErrAuthenticationRequired
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", domain.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return "", domain.ErrAuthenticationRequired
	}
	return tokenString, nil
}
