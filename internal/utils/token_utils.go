package utils

import (
	"errors"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims issued on login. Subject carries the user id.
type Claims struct {
	TenantID string          `json:"tenantId"`
	Role     domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// Identity converts the claims into the identity handed to core operations.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{TenantID: c.TenantID, UserID: c.Subject, Role: c.Role}
}

// GenerateJWT generates a new HS256 token for the given user.
func GenerateJWT(user *domain.User, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := Claims{
		TenantID: user.TenantID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// It returns the Claims if the token is valid, or an error otherwise.
func ParseAndValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err // This will include errors like token expired, signature invalid, etc.
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" || claims.TenantID == "" {
		return nil, errors.New("token is missing user or tenant")
	}

	return claims, nil
}
