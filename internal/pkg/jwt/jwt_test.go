package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astek-sistemas/participacao-backend-go/internal/domain/employee"
)

func testJWTService() Service {
	return NewJWTService("test-secret-key-for-jwt", "1h", "24h")
}

func TestGenerateAccessToken(t *testing.T) {
	svc := testJWTService()
	employeeID := "emp-1"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "joana", &employeeID, employee.AccessSuperAdmin)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	userID, _ := decoded.Get("user_id")
	assert.Equal(t, "user-1", userID)
	level, _ := decoded.Get("access_level")
	assert.Equal(t, "super_admin", level)
	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "access", tokenType)
	empClaim, _ := decoded.Get("employee_id")
	assert.Equal(t, "emp-1", empClaim)
}

func TestGenerateAccessTokenWithoutEmployee(t *testing.T) {
	svc := testJWTService()

	token, _, err := svc.GenerateAccessToken("user-1", "joana", nil, employee.AccessManager)
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	empClaim, _ := decoded.Get("employee_id")
	assert.Nil(t, empClaim)
}

func TestValidateRefreshToken(t *testing.T) {
	svc := testJWTService()

	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := testJWTService()

	token, _, err := svc.GenerateAccessToken("user-1", "joana", nil, employee.AccessManager)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestValidateRefreshTokenRejectsGarbage(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateRefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestTokenRevocation(t *testing.T) {
	svc := testJWTService()

	token, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := testJWTService()

	cookie := svc.RefreshTokenCookie("tok", 1893456000)
	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}
