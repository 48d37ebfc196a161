package service

import (
	"fmt"
	"testing"

	"flashcarder/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_CheckPassword(t *testing.T) {
	tests := []struct {
		name           string
		botPassword    string
		inputPassword  string
		expectedResult bool
	}{
		{
			name:           "matching password",
			botPassword:    "deck-gate-42",
			inputPassword:  "deck-gate-42",
			expectedResult: true,
		},
		{
			name:           "different password",
			botPassword:    "deck-gate-42",
			inputPassword:  "deck-gate",
			expectedResult: false,
		},
		{
			name:           "empty input",
			botPassword:    "deck-gate-42",
			inputPassword:  "",
			expectedResult: false,
		},
		{
			name:           "unset bot password never matches",
			botPassword:    "",
			inputPassword:  "",
			expectedResult: false,
		},
		{
			name:           "trailing space is significant",
			botPassword:    "deck-gate-42",
			inputPassword:  "deck-gate-42 ",
			expectedResult: false,
		},
		{
			name:           "case sensitive",
			botPassword:    "Deck-Gate-42",
			inputPassword:  "deck-gate-42",
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewAuthService(new(testutil.MockUserRepository), tt.botPassword)

			assert.Equal(t, tt.expectedResult, service.CheckPassword(tt.inputPassword))
		})
	}
}

func TestAuthService_Unlock(t *testing.T) {
	tests := []struct {
		name            string
		password        string
		expectAuthorize bool
		authorizeErr    error
		expectedError   error
		expectAnyErr    bool
	}{
		{
			name:            "right password authorizes the user",
			password:        "deck-gate-42",
			expectAuthorize: true,
		},
		{
			name:          "wrong password leaves the user locked",
			password:      "guess",
			expectedError: ErrWrongPassword,
			expectAnyErr:  true,
		},
		{
			name:            "store failure is reported",
			password:        "deck-gate-42",
			expectAuthorize: true,
			authorizeErr:    fmt.Errorf("db error"),
			expectAnyErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			if tt.expectAuthorize {
				mockRepo.On("AuthorizeUser", int64(123)).Return(tt.authorizeErr)
			}

			service := NewAuthService(mockRepo, "deck-gate-42")

			err := service.Unlock(123, tt.password)

			if tt.expectAnyErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			}
			if tt.authorizeErr != nil {
				assert.NotErrorIs(t, err, ErrWrongPassword)
			}
			if !tt.expectAuthorize {
				mockRepo.AssertNotCalled(t, "AuthorizeUser", int64(123))
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_IsAuthorized(t *testing.T) {
	tests := []struct {
		name          string
		userID        int64
		mockReturn    bool
		mockError     error
		expectedAuth  bool
		expectedError bool
	}{
		{
			name:         "unlocked user",
			userID:       123,
			mockReturn:   true,
			expectedAuth: true,
		},
		{
			name:         "locked user",
			userID:       456,
			mockReturn:   false,
			expectedAuth: false,
		},
		{
			name:          "store failure",
			userID:        789,
			mockError:     fmt.Errorf("db error"),
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			mockRepo.On("IsAuthorized", tt.userID).Return(tt.mockReturn, tt.mockError)

			service := NewAuthService(mockRepo, "deck-gate-42")

			authorized, err := service.IsAuthorized(tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedAuth, authorized)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_EnsureUserExists(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("EnsureUserExists", int64(123)).Return(nil)

	service := NewAuthService(mockRepo, "deck-gate-42")

	assert.NoError(t, service.EnsureUserExists(123))
	mockRepo.AssertExpectations(t)
}
