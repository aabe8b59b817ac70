package services

import (
	"fmt"

	"github.com/dferrandiz/tasklist-be/internal/apperrors"
	"github.com/dferrandiz/tasklist-be/internal/auth"
	"github.com/dferrandiz/tasklist-be/internal/models"
	"github.com/dferrandiz/tasklist-be/internal/repository"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Signup(email, password, name string, avatar *string) (models.AuthUser, error)
	Signin(email, password string) (models.AuthUser, error)
	GetByID(callerID, id string) (models.User, error)
}

// UserService provides signup, signin and user lookup.
type UserService struct {
	users repository.UserRepositoryProvider
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepositoryProvider) *UserService {
	return &UserService{users: users}
}

// Signup registers a new user and issues a token for them. Duplicate emails
// are not rejected at this layer.
func (s *UserService) Signup(email, password, name string, avatar *string) (models.AuthUser, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return models.AuthUser{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Insert(name, email, hashed, avatar)
	if err != nil {
		return models.AuthUser{}, err
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return models.AuthUser{}, err
	}

	user.PasswordHash = ""
	return models.AuthUser{User: user, Token: token}, nil
}

// Signin verifies a user's credentials and issues a token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s *UserService) Signin(email, password string) (models.AuthUser, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return models.AuthUser{}, err
	}
	if user == nil {
		return models.AuthUser{}, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return models.AuthUser{}, apperrors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return models.AuthUser{}, err
	}

	user.PasswordHash = ""
	return models.AuthUser{User: *user, Token: token}, nil
}

// GetByID retrieves a user by id. Requires an authenticated caller.
func (s *UserService) GetByID(callerID, id string) (models.User, error) {
	if callerID == "" {
		return models.User{}, apperrors.ErrUnauthenticated
	}

	user, err := s.users.FindByID(id)
	if err != nil {
		return models.User{}, err
	}
	if user == nil {
		return models.User{}, apperrors.ErrNotFound
	}

	user.PasswordHash = ""
	return *user, nil
}
