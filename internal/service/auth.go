package service

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"flashcarder/internal/repository"
)

// ErrWrongPassword is returned by Unlock when the password does not match
var ErrWrongPassword = errors.New("wrong password")

// AuthService is the password gate in front of the deck form and card buttons.
// A user unlocks the bot once; the flag lives in the users table.
type AuthService struct {
	userRepo    repository.UserRepository
	botPassword string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, botPassword string) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		botPassword: botPassword,
	}
}

// CheckPassword compares in constant time. An empty or unset password never matches.
func (s *AuthService) CheckPassword(password string) bool {
	if password == "" || s.botPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.botPassword)) == 1
}

// Unlock authorizes userID if password matches the bot password
func (s *AuthService) Unlock(userID int64, password string) error {
	if !s.CheckPassword(password) {
		return ErrWrongPassword
	}
	if err := s.userRepo.AuthorizeUser(userID); err != nil {
		return fmt.Errorf("failed to authorize user %d: %w", userID, err)
	}
	return nil
}

// IsAuthorized reports whether userID already unlocked the bot
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	return s.userRepo.IsAuthorized(userID)
}

// EnsureUserExists creates the user row on first contact
func (s *AuthService) EnsureUserExists(userID int64) error {
	return s.userRepo.EnsureUserExists(userID)
}
