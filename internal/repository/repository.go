package repository

import (
	"flashcarder/internal/domain"

	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
	GetWebhookURL(userID int64) (string, error)
	SaveWebhookURL(userID int64, webhookURL string) error
}

// DeckRepository defines deck data operations
type DeckRepository interface {
	SaveSession(session *domain.Session) error
	GetLatestSession(userID int64) (*domain.Session, error)
	UpdateEntry(sessionID uuid.UUID, position int, entry domain.VocabularyEntry) error
	CleanOldSessions(days int) error
}
