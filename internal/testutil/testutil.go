package testutil

import (
	"time"

	"flashcarder/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
	}
}

// NewTestSession creates a stored deck over the given word/translation pairs
func NewTestSession(userID int64, topic string, pairs ...string) *domain.Session {
	entries := make([]domain.VocabularyEntry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		entries = append(entries, domain.VocabularyEntry{
			Word:        pairs[i],
			Translation: pairs[i+1],
			Difficulty:  domain.DifficultyMedium,
		})
	}

	return &domain.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Topic:     topic,
		Entries:   entries,
		CreatedAt: time.Now(),
	}
}
