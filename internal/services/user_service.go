// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/store"
	"github.com/DBN92/solve-it-neat/internal/utils"
)

var (
	ErrEmailExists    = errors.New("a user with this email already exists")
	ErrLastSuperAdmin = errors.New("the last administrator cannot be removed")
	ErrInvalidRole    = errors.New("invalid role")
)

type UserService struct {
	store store.Store
}

type CreateUserRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,strong_password"`
	Role     models.UserRole `json:"role" validate:"required"`
}

type UpdateUserRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password,omitempty" validate:"omitempty,strong_password"`
	Role     models.UserRole `json:"role" validate:"required"`
	Active   *bool           `json:"active,omitempty"`
}

func NewUserService(st store.Store) *UserService {
	return &UserService{store: st}
}

func (s *UserService) List() ([]models.User, error) {
	return s.store.Users().List()
}

func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	return s.store.Users().GetByID(id)
}

func (s *UserService) Create(req *CreateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	user := &models.User{
		Name:   req.Name,
		Email:  req.Email,
		Role:   req.Role,
		Active: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.Users().Create(user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("User created")

	return user, nil
}

func (s *UserService) Update(id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.store.Users().GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.Email != user.Email {
		if existing, err := s.store.Users().GetByEmail(req.Email); err == nil && existing.ID != id {
			return nil, ErrEmailExists
		}
	}

	// Demoting or deactivating the last administrator would lock the
	// user management section for everyone.
	losesAdmin := user.Role == models.RoleSuperAdm &&
		(req.Role != models.RoleSuperAdm || (req.Active != nil && !*req.Active))
	if losesAdmin {
		n, err := s.store.Users().CountByRole(models.RoleSuperAdm)
		if err != nil {
			return nil, err
		}
		if n <= 1 {
			return nil, ErrLastSuperAdmin
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.Password != "" {
		if err := user.SetPassword(req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if err := s.store.Users().Update(user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	logrus.WithField("user_id", user.ID).Info("User updated")
	return user, nil
}

func (s *UserService) Delete(id uuid.UUID) error {
	user, err := s.store.Users().GetByID(id)
	if err != nil {
		return err
	}

	if user.Role == models.RoleSuperAdm {
		n, err := s.store.Users().CountByRole(models.RoleSuperAdm)
		if err != nil {
			return err
		}
		if n <= 1 {
			return ErrLastSuperAdmin
		}
	}

	if err := s.store.Users().Delete(id); err != nil {
		return err
	}

	logrus.WithField("user_id", id).Info("User deleted")
	return nil
}
