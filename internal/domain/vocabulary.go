package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyWord         = errors.New("word cannot be empty")
	ErrEmptyTranslation  = errors.New("translation cannot be empty")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)

// Difficulty is the user's own rating of a card
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists all levels in display order
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty converts a stored or callback value into a Difficulty
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// Valid reports whether d is one of the known levels
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// VocabularyEntry is one card of a deck with its annotations
type VocabularyEntry struct {
	Word        string
	Translation string
	Remembered  bool
	Difficulty  Difficulty
}

// NewVocabularyEntry creates an entry with default annotations
func NewVocabularyEntry(word, translation string) (VocabularyEntry, error) {
	word = strings.TrimSpace(word)
	translation = strings.TrimSpace(translation)

	if word == "" {
		return VocabularyEntry{}, ErrEmptyWord
	}
	if translation == "" {
		return VocabularyEntry{}, ErrEmptyTranslation
	}

	return VocabularyEntry{
		Word:        word,
		Translation: translation,
		Remembered:  false,
		Difficulty:  DifficultyMedium,
	}, nil
}
