// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DBN92/solve-it-neat/internal/authz"
	"github.com/DBN92/solve-it-neat/internal/config"
	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:      "test-secret",
			AccessTokenTTL: 1,
		},
	}
}

func TestLoginIssuesTokenAndSections(t *testing.T) {
	st := newTestStore(t)
	users := NewUserService(st)
	auth := NewAuthService(st, testConfig())
	utils.SetJWTSecret("test-secret")

	createTestUser(t, users, "João", "joao@email.com", models.RoleComercial)

	resp, err := auth.Login(&LoginRequest{Email: "joao@email.com", Password: "Secret123!"})
	require.NoError(t, err)

	assert.Equal(t, "joao@email.com", resp.User.Email)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.ElementsMatch(t, []string{
		authz.SectionDashboard, authz.SectionNewRequest,
		authz.SectionConsents, authz.SectionApplicant,
	}, resp.Sections)

	claims, err := utils.ValidateJWT(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "comercial", claims.Role)
	assert.Equal(t, "João", claims.Name)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	st := newTestStore(t)
	users := NewUserService(st)
	auth := NewAuthService(st, testConfig())

	createTestUser(t, users, "João", "joao@email.com", models.RoleComercial)

	_, err := auth.Login(&LoginRequest{Email: "joao@email.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown email yields the same error as a wrong password.
	_, err = auth.Login(&LoginRequest{Email: "nobody@email.com", Password: "Secret123!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	st := newTestStore(t)
	users := NewUserService(st)
	auth := NewAuthService(st, testConfig())

	createTestUser(t, users, "Admin", "admin@email.com", models.RoleSuperAdm)
	user := createTestUser(t, users, "João", "joao@email.com", models.RoleComercial)

	_, err := users.Update(user.ID, &UpdateUserRequest{
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Active: boolPtr(false),
	})
	require.NoError(t, err)

	_, err = auth.Login(&LoginRequest{Email: "joao@email.com", Password: "Secret123!"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestMeReflectsCurrentState(t *testing.T) {
	st := newTestStore(t)
	users := NewUserService(st)
	auth := NewAuthService(st, testConfig())

	createTestUser(t, users, "Admin", "admin@email.com", models.RoleSuperAdm)
	user := createTestUser(t, users, "João", "joao@email.com", models.RoleComercial)

	resp, err := auth.Me(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "joao@email.com", resp.User.Email)

	// Deactivation takes effect on the next lookup even though the
	// token is still valid.
	_, err = users.Update(user.ID, &UpdateUserRequest{
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.Role,
		Active: boolPtr(false),
	})
	require.NoError(t, err)

	_, err = auth.Me(user.ID)
	assert.ErrorIs(t, err, ErrUserInactive)
}
