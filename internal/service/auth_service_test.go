package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yongin-adm/roster-adp-api/internal/models"
	appErrors "github.com/yongin-adm/roster-adp-api/pkg/errors"
)

func testAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("roster-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(nil, nil, AuthConfig{
		PasswordHash: string(hash),
		Username:     "admin",
		Secret:       "test-signing-key",
		Expiration:   time.Hour,
		Issuer:       "roster-adp-api",
	})
}

func TestAuthLoginAndValidate(t *testing.T) {
	svc := testAuthService(t)

	resp, err := svc.Login(models.LoginRequest{Password: "roster-secret"})
	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Username)
	assert.NotEmpty(t, resp.Token)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "roster-adp-api", claims.Issuer)
}

func TestAuthLoginCustomUsername(t *testing.T) {
	svc := testAuthService(t)

	resp, err := svc.Login(models.LoginRequest{Username: "운영팀", Password: "roster-secret"})
	require.NoError(t, err)
	assert.Equal(t, "운영팀", resp.Username)
}

func TestAuthLoginWrongPassword(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.Login(models.LoginRequest{Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthLoginMissingPassword(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.Login(models.LoginRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateGarbage(t *testing.T) {
	svc := testAuthService(t)

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateExpired(t *testing.T) {
	svc := testAuthService(t)
	issued := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	resp, err := svc.Login(models.LoginRequest{Password: "roster-secret"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	_, err = svc.ValidateToken(resp.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthValidateWrongSecret(t *testing.T) {
	svc := testAuthService(t)
	resp, err := svc.Login(models.LoginRequest{Password: "roster-secret"})
	require.NoError(t, err)

	other := testAuthService(t)
	other.config.Secret = "different-key"
	_, err = other.ValidateToken(resp.Token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
