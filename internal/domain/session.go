package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyDeck       = errors.New("deck must contain at least one entry")
	ErrEmptyTopic      = errors.New("topic cannot be empty")
	ErrIndexOutOfRange = errors.New("entry index out of range")
	ErrNoSession       = errors.New("no active deck")
)

// Session is the active topic together with its fixed deck of entries.
// Entries are addressed by index; the deck never grows or shrinks.
type Session struct {
	ID        uuid.UUID
	UserID    int64
	Topic     string
	Entries   []VocabularyEntry
	CreatedAt time.Time
}

// NewSession creates a session owning a copy of entries
func NewSession(userID int64, topic string, entries []VocabularyEntry) (*Session, error) {
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if len(entries) == 0 {
		return nil, ErrEmptyDeck
	}

	owned := make([]VocabularyEntry, len(entries))
	copy(owned, entries)

	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		Topic:     topic,
		Entries:   owned,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Len returns the deck size
func (s *Session) Len() int {
	return len(s.Entries)
}

// Entry returns a copy of the entry at index i
func (s *Session) Entry(i int) (VocabularyEntry, error) {
	if err := s.checkIndex(i); err != nil {
		return VocabularyEntry{}, err
	}
	return s.Entries[i], nil
}

// SetRemembered writes the remembered flag of entry i
func (s *Session) SetRemembered(i int, flag bool) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.Entries[i].Remembered = flag
	return nil
}

// SetDifficulty writes the difficulty of entry i
func (s *Session) SetDifficulty(i int, level Difficulty) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	if !level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, level)
	}
	s.Entries[i].Difficulty = level
	return nil
}

// RememberedCount returns how many entries are marked remembered
func (s *Session) RememberedCount() int {
	count := 0
	for _, e := range s.Entries {
		if e.Remembered {
			count++
		}
	}
	return count
}

func (s *Session) checkIndex(i int) error {
	if i < 0 || i >= len(s.Entries) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, i, len(s.Entries))
	}
	return nil
}

// SampleEntries returns the placeholder deck shown after a submission.
// The webhook response is never read, so every deck starts from these.
func SampleEntries() []VocabularyEntry {
	return []VocabularyEntry{
		{Word: "Hello", Translation: "สวัสดี", Difficulty: DifficultyMedium},
		{Word: "Goodbye", Translation: "ลาก่อน", Difficulty: DifficultyMedium},
		{Word: "Thank you", Translation: "ขอบคุณ", Difficulty: DifficultyMedium},
	}
}
