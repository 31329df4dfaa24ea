package utils

import (
	"testing"
	"time"

	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &domain.User{UserID: "user-1", TenantID: "tenant-1", Role: domain.RoleAdmin}

	token, err := GenerateJWT(user, "secret", time.Hour, "builder-crm")
	require.NoError(t, err)

	claims, err := ParseAndValidateJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, domain.Identity{TenantID: "tenant-1", UserID: "user-1", Role: domain.RoleAdmin}, claims.Identity())
	assert.Equal(t, "builder-crm", claims.Issuer)
}

func TestParseAndValidateJWT_Rejects(t *testing.T) {
	user := &domain.User{UserID: "user-1", TenantID: "tenant-1", Role: domain.RoleStaff}

	wrongSecret, err := GenerateJWT(user, "other", time.Hour, "builder-crm")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(wrongSecret, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	expired, err := GenerateJWT(user, "secret", -time.Minute, "builder-crm")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(expired, "secret")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	noTenant, err := GenerateJWT(&domain.User{UserID: "user-1"}, "secret", time.Hour, "builder-crm")
	require.NoError(t, err)
	_, err = ParseAndValidateJWT(noTenant, "secret")
	assert.Error(t, err)

	_, err = ParseAndValidateJWT("not-a-token", "secret")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.False(t, CheckPasswordHash("s3cret!", ""))
}
