// internal/services/user_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/store"
)

func boolPtr(b bool) *bool { return &b }

func createTestUser(t *testing.T, svc *UserService, name, email string, role models.UserRole) *models.User {
	t.Helper()
	user, err := svc.Create(&CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: "Secret123!",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	user := createTestUser(t, svc, "João", "joao@email.com", models.RoleComercial)
	assert.NotEqual(t, "Secret123!", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("Secret123!"))
	assert.Error(t, user.CheckPassword("wrong"))
	assert.True(t, user.Active)
}

func TestCreateUserRejectsWeakPassword(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	_, err := svc.Create(&CreateUserRequest{
		Name:     "João",
		Email:    "joao@email.com",
		Password: "weak",
		Role:     models.RoleComercial,
	})
	assert.Error(t, err)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	createTestUser(t, svc, "João", "joao@email.com", models.RoleComercial)

	_, err := svc.Create(&CreateUserRequest{
		Name:     "Outro João",
		Email:    "joao@email.com",
		Password: "Secret123!",
		Role:     models.RoleSuporte,
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestDeleteLastSuperAdminBlocked(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	admin := createTestUser(t, svc, "Admin", "admin@email.com", models.RoleSuperAdm)
	createTestUser(t, svc, "João", "joao@email.com", models.RoleComercial)

	err := svc.Delete(admin.ID)
	assert.ErrorIs(t, err, ErrLastSuperAdmin)

	// A second administrator unblocks the delete.
	createTestUser(t, svc, "Admin 2", "admin2@email.com", models.RoleSuperAdm)
	assert.NoError(t, svc.Delete(admin.ID))
}

func TestDemoteLastSuperAdminBlocked(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	admin := createTestUser(t, svc, "Admin", "admin@email.com", models.RoleSuperAdm)

	_, err := svc.Update(admin.ID, &UpdateUserRequest{
		Name:  admin.Name,
		Email: admin.Email,
		Role:  models.RoleComercial,
	})
	assert.ErrorIs(t, err, ErrLastSuperAdmin)

	_, err = svc.Update(admin.ID, &UpdateUserRequest{
		Name:   admin.Name,
		Email:  admin.Email,
		Role:   models.RoleSuperAdm,
		Active: boolPtr(false),
	})
	assert.ErrorIs(t, err, ErrLastSuperAdmin)
}

func TestInactiveSuperAdminStillCounts(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	admin := createTestUser(t, svc, "Admin", "admin@email.com", models.RoleSuperAdm)
	second := createTestUser(t, svc, "Admin 2", "admin2@email.com", models.RoleSuperAdm)

	// Deactivate the second administrator; it still counts toward the
	// guard, so deleting the first stays allowed.
	_, err := svc.Update(second.ID, &UpdateUserRequest{
		Name:   second.Name,
		Email:  second.Email,
		Role:   models.RoleSuperAdm,
		Active: boolPtr(false),
	})
	require.NoError(t, err)

	assert.NoError(t, svc.Delete(admin.ID))
}

func TestUpdateUserEmailConflict(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	createTestUser(t, svc, "João", "joao@email.com", models.RoleComercial)
	maria := createTestUser(t, svc, "Maria", "maria@email.com", models.RoleSuporte)

	_, err := svc.Update(maria.ID, &UpdateUserRequest{
		Name:  maria.Name,
		Email: "joao@email.com",
		Role:  maria.Role,
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestUpdateUserChangesPassword(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	user := createTestUser(t, svc, "João", "joao@email.com", models.RoleComercial)

	updated, err := svc.Update(user.ID, &UpdateUserRequest{
		Name:     user.Name,
		Email:    user.Email,
		Password: "NewSecret123!",
		Role:     user.Role,
	})
	require.NoError(t, err)
	assert.NoError(t, updated.CheckPassword("NewSecret123!"))
	assert.Error(t, updated.CheckPassword("Secret123!"))
}

func TestDeleteUserNotFound(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	err := svc.Delete(uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
