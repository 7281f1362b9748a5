package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ari1008/vegnbio-reservation/internal/domain/identity"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTResolver_Resolve_Owner(t *testing.T) {
	resolver := NewJWTResolver(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "user-1",
		"name": "オーナー",
		"role": "owner",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	user, err := resolver.Resolve(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, identity.RoleOwner, user.Role)
	assert.True(t, user.CanManageBookings())
}

func TestJWTResolver_Resolve_Customer(t *testing.T) {
	resolver := NewJWTResolver(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "user-2",
		"role": "customer",
	})

	user, err := resolver.Resolve(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, identity.RoleCustomer, user.Role)
	assert.False(t, user.CanManageBookings())
}

func TestJWTResolver_Resolve_WrongSecret(t *testing.T) {
	resolver := NewJWTResolver(testSecret)
	token := signToken(t, "other-secret", jwt.MapClaims{
		"sub":  "user-1",
		"role": "owner",
	})

	_, err := resolver.Resolve(context.Background(), token)

	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrUnauthorized)
}

func TestJWTResolver_Resolve_Expired(t *testing.T) {
	resolver := NewJWTResolver(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "user-1",
		"role": "owner",
		"exp":  time.Now().Add(-time.Hour).Unix(),
	})

	_, err := resolver.Resolve(context.Background(), token)

	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrUnauthorized)
}

func TestJWTResolver_Resolve_UnknownRole(t *testing.T) {
	resolver := NewJWTResolver(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":  "user-1",
		"role": "superuser",
	})

	_, err := resolver.Resolve(context.Background(), token)

	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrUnknownRole)
}

func TestJWTResolver_Resolve_MissingSubject(t *testing.T) {
	resolver := NewJWTResolver(testSecret)
	token := signToken(t, testSecret, jwt.MapClaims{
		"role": "owner",
	})

	_, err := resolver.Resolve(context.Background(), token)

	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrUnauthorized)
}

func TestJWTResolver_Resolve_Garbage(t *testing.T) {
	resolver := NewJWTResolver(testSecret)

	_, err := resolver.Resolve(context.Background(), "not-a-jwt")

	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrUnauthorized)
}
