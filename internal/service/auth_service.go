// Package service contains the application's business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"
	"time"

	"pinboard/internal/models"
	"pinboard/internal/repository"
	"pinboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// AuthService registers and authenticates users and owns the session lifecycle.
type AuthService struct {
	userRepo        repository.UserRepository
	sessionRepo     repository.SessionRepository
	sessionLifetime time.Duration
	bcryptCost      int
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	sessionLifetime time.Duration,
	bcryptCost int,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		sessionRepo:     sessionRepo,
		sessionLifetime: sessionLifetime,
		bcryptCost:      bcryptCost,
	}
}

// Signup validates the credentials, creates the user and opens a session.
// The returned user never carries the credential hash to the transport layer;
// handlers must respond with user.Public().
func (s *AuthService) Signup(ctx context.Context, name, password string) (*models.User, *models.Session, error) {
	name = validation.NormalizeName(name)
	if err := validation.ValidateName(name); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, models.NewConflictError("Name already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	user := &models.User{Name: name, Password: string(hash)}
	// Create maps the unique violation to a conflict, covering the race where
	// two signups for the same name pass the lookup above simultaneously.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	session, err := s.sessionRepo.Create(ctx, user.ID, s.sessionLifetime)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Login authenticates by name and password. An unknown name and a wrong
// password produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, name, password string) (*models.User, *models.Session, error) {
	name = validation.NormalizeName(name)
	if name == "" || password == "" {
		return nil, nil, models.NewValidationError("Name and password are required")
	}

	user, err := s.userRepo.GetByName(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, models.NewAuthenticationError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, models.NewAuthenticationError()
	}

	session, err := s.sessionRepo.Create(ctx, user.ID, s.sessionLifetime)
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Logout destroys the session. Destroying an absent or expired session is a
// no-op, not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, token)
}

// CurrentUser resolves a session token to its user. Every miss along the way
// (no token, unknown token, expired session, deleted user) is the anonymous
// state: (nil, nil).
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}
