package service

import (
	"flashcarder/internal/repository"

	"go.uber.org/zap"
)

// StatsService handles housekeeping of stored decks
type StatsService struct {
	deckRepo      repository.DeckRepository
	retentionDays int
	logger        *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(deckRepo repository.DeckRepository, retentionDays int, logger *zap.Logger) *StatsService {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &StatsService{
		deckRepo:      deckRepo,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// CleanupOldData removes decks older than the retention window
func (s *StatsService) CleanupOldData() error {
	s.logger.Info("Starting cleanup of old decks", zap.Int("retention_days", s.retentionDays))

	err := s.deckRepo.CleanOldSessions(s.retentionDays)
	if err != nil {
		s.logger.Error("Failed to cleanup old decks", zap.Error(err))
		return err
	}

	s.logger.Info("Cleanup completed successfully")
	return nil
}
