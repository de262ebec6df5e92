package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/openmapcollab/mapping-api/internal/models"
	"github.com/openmapcollab/mapping-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid username or API key")

// AuthService handles authentication against stored API key hashes.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	APIKey   string
}

// Login verifies credentials and returns the authenticated user.
// A successful login refreshes last_login_at, which is what the
// inactivity sweep keys on.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.APIKeyHash), []byte(input.APIKey)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.LastLoginAt = &now

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id int64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
