package testutil

import (
	"flashcarder/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) GetWebhookURL(userID int64) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) SaveWebhookURL(userID int64, webhookURL string) error {
	args := m.Called(userID, webhookURL)
	return args.Error(0)
}

// MockDeckRepository is a mock for DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) SaveSession(session *domain.Session) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockDeckRepository) GetLatestSession(userID int64) (*domain.Session, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockDeckRepository) UpdateEntry(sessionID uuid.UUID, position int, entry domain.VocabularyEntry) error {
	args := m.Called(sessionID, position, entry)
	return args.Error(0)
}

func (m *MockDeckRepository) CleanOldSessions(days int) error {
	args := m.Called(days)
	return args.Error(0)
}

// MockDispatcher is a mock for service.WebhookDispatcher
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(sub domain.Submission) error {
	args := m.Called(sub)
	return args.Error(0)
}
