package service

import (
	"errors"
	"fmt"
	"sync"

	"flashcarder/internal/domain"
	"flashcarder/internal/repository"

	"go.uber.org/zap"
)

// ErrNavigationDisabled is returned for next/previous on a single-card deck
var ErrNavigationDisabled = errors.New("navigation disabled for a single-card deck")

// userDeck is one user's Session Store plus Navigator
type userDeck struct {
	mu  sync.Mutex
	nav *domain.Navigator
}

// DeckService owns the active deck of every user and persists annotations
type DeckService struct {
	deckRepo repository.DeckRepository
	logger   *zap.Logger

	decks   map[int64]*userDeck
	decksMu sync.Mutex
}

// NewDeckService creates a new deck service
func NewDeckService(deckRepo repository.DeckRepository, logger *zap.Logger) *DeckService {
	return &DeckService{
		deckRepo: deckRepo,
		logger:   logger,
		decks:    make(map[int64]*userDeck),
	}
}

// Start replaces the user's deck with a fresh session over entries.
// Saves and swaps for one user happen in the same order under the user's lock.
func (s *DeckService) Start(userID int64, topic string, entries []domain.VocabularyEntry) (domain.CardView, error) {
	session, err := domain.NewSession(userID, topic, entries)
	if err != nil {
		return domain.CardView{}, err
	}

	deck := s.deckFor(userID)
	deck.mu.Lock()
	defer deck.mu.Unlock()

	if err := s.deckRepo.SaveSession(session); err != nil {
		// the deck still works in memory, it just won't survive a restart
		s.logger.Error("Failed to persist deck",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.String("deck_id", session.ID.String()),
		)
	}

	if deck.nav == nil {
		deck.nav, err = domain.NewNavigator(session)
	} else {
		err = deck.nav.Replace(session)
	}
	if err != nil {
		return domain.CardView{}, err
	}

	s.logger.Info("Deck started",
		zap.Int64("user_id", userID),
		zap.String("topic", topic),
		zap.Int("size", session.Len()),
	)

	return deck.nav.Snapshot(), nil
}

// View returns the current card without changing anything
func (s *DeckService) View(userID int64) (domain.CardView, error) {
	return s.withDeck(userID, func(nav *domain.Navigator) error { return nil })
}

// Advance moves to the next card
func (s *DeckService) Advance(userID int64) (domain.CardView, error) {
	return s.withDeck(userID, func(nav *domain.Navigator) error {
		if !nav.Advance() {
			return ErrNavigationDisabled
		}
		return nil
	})
}

// Retreat moves to the previous card
func (s *DeckService) Retreat(userID int64) (domain.CardView, error) {
	return s.withDeck(userID, func(nav *domain.Navigator) error {
		if !nav.Retreat() {
			return ErrNavigationDisabled
		}
		return nil
	})
}

// Flip turns the current card over
func (s *DeckService) Flip(userID int64) (domain.CardView, error) {
	return s.withDeck(userID, func(nav *domain.Navigator) error {
		nav.Flip()
		return nil
	})
}

// SetRemembered marks the current card
func (s *DeckService) SetRemembered(userID int64, flag bool) (domain.CardView, error) {
	return s.withDeck(userID, func(nav *domain.Navigator) error {
		if err := nav.SetRemembered(flag); err != nil {
			return err
		}
		s.persistCurrent(nav)
		return nil
	})
}

// ToggleRemembered flips the remembered flag of the current card
func (s *DeckService) ToggleRemembered(userID int64) (domain.CardView, error) {
	return s.withDeck(userID, func(nav *domain.Navigator) error {
		if err := nav.SetRemembered(!nav.Current().Remembered); err != nil {
			return err
		}
		s.persistCurrent(nav)
		return nil
	})
}

// SetDifficulty rates the current card
func (s *DeckService) SetDifficulty(userID int64, level domain.Difficulty) (domain.CardView, error) {
	return s.withDeck(userID, func(nav *domain.Navigator) error {
		if err := nav.SetDifficulty(level); err != nil {
			return err
		}
		s.persistCurrent(nav)
		return nil
	})
}

// withDeck runs fn under the user's lock and returns the resulting view.
// The view is returned even when fn fails so the caller can redraw.
func (s *DeckService) withDeck(userID int64, fn func(nav *domain.Navigator) error) (domain.CardView, error) {
	deck := s.deckFor(userID)

	deck.mu.Lock()
	defer deck.mu.Unlock()

	if deck.nav == nil {
		if err := s.restore(deck, userID); err != nil {
			return domain.CardView{}, err
		}
	}

	err := fn(deck.nav)
	return deck.nav.Snapshot(), err
}

// deckFor returns the user's registry slot, creating an empty one on first use.
// Only the map access happens under decksMu; loading is done under the slot's own lock.
func (s *DeckService) deckFor(userID int64) *userDeck {
	s.decksMu.Lock()
	defer s.decksMu.Unlock()

	deck, exists := s.decks[userID]
	if !exists {
		deck = &userDeck{}
		s.decks[userID] = deck
	}
	return deck
}

// restore loads the latest stored deck after a restart. deck.mu must be held.
func (s *DeckService) restore(deck *userDeck, userID int64) error {
	session, err := s.deckRepo.GetLatestSession(userID)
	if err != nil {
		return fmt.Errorf("failed to load deck: %w", err)
	}
	if session == nil {
		return domain.ErrNoSession
	}

	nav, err := domain.NewNavigator(session)
	if err != nil {
		return err
	}

	s.logger.Info("Deck restored",
		zap.Int64("user_id", userID),
		zap.String("deck_id", session.ID.String()),
	)

	deck.nav = nav
	return nil
}

func (s *DeckService) persistCurrent(nav *domain.Navigator) {
	session := nav.Session()
	index := nav.State().CurrentIndex

	if err := s.deckRepo.UpdateEntry(session.ID, index, nav.Current()); err != nil {
		s.logger.Error("Failed to persist annotation",
			zap.Error(err),
			zap.Int64("user_id", session.UserID),
			zap.Int("position", index),
		)
	}
}
