package postgres

import (
	"database/sql"
	"fmt"

	"flashcarder/internal/domain"

	"github.com/google/uuid"
)

// DeckRepo implements repository.DeckRepository
type DeckRepo struct {
	db *sql.DB
}

// NewDeckRepo creates a new deck repository
func NewDeckRepo(db *sql.DB) *DeckRepo {
	return &DeckRepo{db: db}
}

// SaveSession stores a deck and all its entries in one transaction
func (r *DeckRepo) SaveSession(session *domain.Session) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	deckQuery := `
		INSERT INTO decks (id, user_id, topic, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := tx.Exec(deckQuery, session.ID, session.UserID, session.Topic, session.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert deck: %w", err)
	}

	entryQuery := `
		INSERT INTO deck_entries (deck_id, position, word, translation, remembered, difficulty)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, e := range session.Entries {
		if _, err := tx.Exec(entryQuery, session.ID, i, e.Word, e.Translation, e.Remembered, string(e.Difficulty)); err != nil {
			return fmt.Errorf("failed to insert entry %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetLatestSession returns the most recent deck of the user, or nil if there is none
func (r *DeckRepo) GetLatestSession(userID int64) (*domain.Session, error) {
	var s domain.Session
	deckQuery := `
		SELECT id, user_id, topic, created_at
		FROM decks
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	err := r.db.QueryRow(deckQuery, userID).Scan(&s.ID, &s.UserID, &s.Topic, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	entries, err := r.getEntries(s.ID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		// a deck without entries cannot be navigated
		return nil, nil
	}
	s.Entries = entries

	return &s, nil
}

func (r *DeckRepo) getEntries(deckID uuid.UUID) ([]domain.VocabularyEntry, error) {
	query := `
		SELECT word, translation, remembered, difficulty
		FROM deck_entries
		WHERE deck_id = $1
		ORDER BY position
	`
	rows, err := r.db.Query(query, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.VocabularyEntry
	for rows.Next() {
		var e domain.VocabularyEntry
		var difficulty string
		if err := rows.Scan(&e.Word, &e.Translation, &e.Remembered, &difficulty); err != nil {
			return nil, err
		}
		level, err := domain.ParseDifficulty(difficulty)
		if err != nil {
			return nil, err
		}
		e.Difficulty = level
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// UpdateEntry writes the annotations of one entry
func (r *DeckRepo) UpdateEntry(sessionID uuid.UUID, position int, entry domain.VocabularyEntry) error {
	query := `
		UPDATE deck_entries
		SET remembered = $3, difficulty = $4
		WHERE deck_id = $1 AND position = $2
	`
	_, err := r.db.Exec(query, sessionID, position, entry.Remembered, string(entry.Difficulty))
	return err
}

// CleanOldSessions deletes decks older than specified days, entries cascade
func (r *DeckRepo) CleanOldSessions(days int) error {
	query := `
		DELETE FROM decks
		WHERE created_at < NOW() - INTERVAL '1 day' * $1
	`
	_, err := r.db.Exec(query, days)
	return err
}
