package server

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/resource-manager/internal/allocation"
	"github.com/jonathan/resource-manager/internal/config"
	"github.com/jonathan/resource-manager/internal/db"
	"github.com/jonathan/resource-manager/internal/types"
)

// UserService provides business logic for registration and login.
type UserService struct {
	store          Store
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(store Store, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		store:          store,
		passwordConfig: passwordConfig,
	}
}

// Register creates a user with a hashed password. Engineers registered without a
// capacity get the full-time default.
func (s *UserService) Register(ctx context.Context, req *types.CreateUserRequest) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.store.CheckEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &types.User{
		Email:      email,
		Name:       strings.TrimSpace(req.Name),
		Role:       req.Role,
		Skills:     allocation.CleanSkills(req.Skills),
		Department: req.Department,
	}
	if req.Role == types.RoleEngineer {
		user.Seniority = req.Seniority
		user.MaxCapacity = req.MaxCapacity
		if user.MaxCapacity == nil {
			capacity := types.DefaultMaxCapacity
			user.MaxCapacity = &capacity
		}
	}

	userID, err := s.store.CreateUser(ctx, user, passwordHash)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, &ErrEmailAlreadyExists{Email: email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if created == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return &created.User, nil
}

// Login authenticates a user by email and password.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	record, err := s.store.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	// Unknown email and wrong password are indistinguishable to the caller.
	if record == nil || record.PasswordHash == "" {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, record.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return &record.User, nil
}

// GetUser returns a user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*types.User, error) {
	record, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if record == nil {
		return nil, &ErrUserNotFound{UserID: id}
	}
	return &record.User, nil
}
