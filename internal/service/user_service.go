package service

import (
	"context"

	"github.com/edustack/schoolhub/internal/model"
	"github.com/edustack/schoolhub/internal/repository"
)

// UserService handles user management business logic.
type UserService struct {
	userRepo *repository.UserRepository
	auth     *AuthService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{userRepo: userRepo, auth: auth}
}

// GetByID retrieves a user by its ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetByEmail retrieves a user by email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.userRepo.GetByEmail(ctx, email)
}

// List retrieves all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// Create hashes the supplied password and inserts the user.
func (s *UserService) Create(ctx context.Context, user *model.User, password string) error {
	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.userRepo.Create(ctx, user)
}

// Update modifies an existing user. An empty password keeps the current
// hash; a non-empty one is re-hashed.
func (s *UserService) Update(ctx context.Context, user *model.User, password string) error {
	if password != "" {
		hash, err := s.auth.HashPassword(password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	} else {
		user.PasswordHash = ""
	}
	return s.userRepo.Update(ctx, user)
}

// Delete removes a user and revokes any active session.
func (s *UserService) Delete(ctx context.Context, id int) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.auth.RevokeSession(ctx, id)
}
