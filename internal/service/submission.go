package service

import (
	"errors"
	"fmt"

	"flashcarder/internal/domain"
	"flashcarder/internal/repository"

	"go.uber.org/zap"
)

// ErrDispatchFailed wraps any failure to hand the webhook request off
var ErrDispatchFailed = errors.New("failed to call webhook")

// WebhookDispatcher sends a deck request without waiting for the response
type WebhookDispatcher interface {
	Dispatch(sub domain.Submission) error
}

// SubmissionService turns a filled-in deck form into a new deck
type SubmissionService struct {
	userRepo   repository.UserRepository
	dispatcher WebhookDispatcher
	decks      *DeckService
	validator  *submissionValidator
	logger     *zap.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	userRepo repository.UserRepository,
	dispatcher WebhookDispatcher,
	decks *DeckService,
	logger *zap.Logger,
) (*SubmissionService, error) {
	v, err := newSubmissionValidator()
	if err != nil {
		return nil, err
	}

	return &SubmissionService{
		userRepo:   userRepo,
		dispatcher: dispatcher,
		decks:      decks,
		validator:  v,
		logger:     logger,
	}, nil
}

// Validate checks a complete submission
func (s *SubmissionService) Validate(sub domain.Submission) error {
	return s.validator.Struct(sub.Normalize())
}

// ValidateField checks a single form step; name is the Submission field name
func (s *SubmissionService) ValidateField(sub domain.Submission, name string) error {
	return s.validator.Partial(sub.Normalize(), name)
}

// Submit validates the form, fires the webhook and replaces the user's deck.
// A validation or dispatch failure leaves the current deck untouched.
func (s *SubmissionService) Submit(userID int64, sub domain.Submission) (domain.CardView, error) {
	sub = sub.Normalize()

	if err := s.validator.Struct(sub); err != nil {
		return domain.CardView{}, err
	}

	s.logger.Info("Sending deck request to webhook",
		zap.Int64("user_id", userID),
		zap.String("topic", sub.Topic),
		zap.Bool("has_secret", sub.HasSecret()),
	)

	if err := s.dispatcher.Dispatch(sub); err != nil {
		s.logger.Error("Failed to dispatch webhook",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		return domain.CardView{}, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}

	if err := s.userRepo.SaveWebhookURL(userID, sub.WebhookURL); err != nil {
		s.logger.Warn("Failed to remember webhook URL", zap.Error(err), zap.Int64("user_id", userID))
	}

	return s.decks.Start(userID, sub.Topic, domain.SampleEntries())
}

// LastWebhookURL returns the endpoint from the user's previous submission
func (s *SubmissionService) LastWebhookURL(userID int64) (string, error) {
	return s.userRepo.GetWebhookURL(userID)
}
