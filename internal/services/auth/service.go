// Package auth handles user registration and login, issuing the JWTs
// the API surface authenticates with.
package auth

import (
	"context"
	"errors"
	"log/slog"

	"accountsvc/internal/models"
	"accountsvc/internal/repositories"
	"accountsvc/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// Service errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrInvalidRole        = errors.New("role must be user or admin")
)

type Service interface {
	Register(ctx context.Context, email, password, role string) (*models.User, error)
	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)
}

type service struct {
	users  repositories.UserRepository
	logger *slog.Logger
}

func NewService(users repositories.UserRepository, logger *slog.Logger) Service {
	if users == nil {
		panic("user repository is required")
	}
	return &service{
		users:  users,
		logger: logger.With("service", "auth"),
	}
}

func (s *service) Register(ctx context.Context, email, password, role string) (*models.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user", user.ID, "role", user.Role)
	return user, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("login failed, user not found", "email", email)
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.logger.Debug("login failed, wrong password", "user", user.ID)
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(&models.UserClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}
