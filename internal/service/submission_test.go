package service

import (
	"errors"
	"fmt"
	"testing"

	"flashcarder/internal/domain"
	"flashcarder/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type submissionFixture struct {
	users      *testutil.MockUserRepository
	decks      *testutil.MockDeckRepository
	dispatcher *testutil.MockDispatcher
	deckSvc    *DeckService
	service    *SubmissionService
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()

	f := &submissionFixture{
		users:      new(testutil.MockUserRepository),
		decks:      new(testutil.MockDeckRepository),
		dispatcher: new(testutil.MockDispatcher),
	}
	f.deckSvc = NewDeckService(f.decks, testutil.NewTestLogger())

	service, err := NewSubmissionService(f.users, f.dispatcher, f.deckSvc, testutil.NewTestLogger())
	require.NoError(t, err)
	f.service = service

	return f
}

func TestSubmissionService_Submit(t *testing.T) {
	f := newSubmissionFixture(t)

	expected := domain.Submission{
		Topic:      "Animals",
		WebhookURL: "https://example.com/hook",
		SecretKey:  " s3cret ",
	}
	f.dispatcher.On("Dispatch", expected).Return(nil)
	f.users.On("SaveWebhookURL", int64(123), "https://example.com/hook").Return(nil)
	f.decks.On("SaveSession", mock.AnythingOfType("*domain.Session")).Return(nil)

	view, err := f.service.Submit(123, domain.Submission{
		Topic:      "  Animals ",
		WebhookURL: " https://example.com/hook",
		SecretKey:  " s3cret ",
	})

	require.NoError(t, err)
	assert.Equal(t, "Animals", view.Topic)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, "Hello", view.Entry.Word)

	f.dispatcher.AssertExpectations(t)
	f.users.AssertExpectations(t)
	f.decks.AssertExpectations(t)
}

func TestSubmissionService_SubmitValidation(t *testing.T) {
	tests := []struct {
		name            string
		submission      domain.Submission
		expectedMessage string
	}{
		{
			name:            "missing topic",
			submission:      domain.Submission{Topic: "  ", WebhookURL: "https://example.com/hook"},
			expectedMessage: "Topic is required",
		},
		{
			name:            "missing webhook",
			submission:      domain.Submission{Topic: "Animals"},
			expectedMessage: "Webhook URL is required",
		},
		{
			name:            "webhook without scheme",
			submission:      domain.Submission{Topic: "Animals", WebhookURL: "example.com/hook"},
			expectedMessage: "Webhook URL must be a full URL",
		},
		{
			name:            "webhook with non http scheme",
			submission:      domain.Submission{Topic: "Animals", WebhookURL: "ftp://example.com/hook"},
			expectedMessage: "Webhook URL must start with http",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSubmissionFixture(t)

			_, err := f.service.Submit(123, tt.submission)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Contains(t, validationErr.Error(), tt.expectedMessage)

			f.dispatcher.AssertNotCalled(t, "Dispatch", mock.Anything)
			f.decks.AssertNotCalled(t, "SaveSession", mock.Anything)
		})
	}
}

func TestSubmissionService_DispatchFailureKeepsDeck(t *testing.T) {
	f := newSubmissionFixture(t)

	f.decks.On("SaveSession", mock.AnythingOfType("*domain.Session")).Return(nil).Once()
	_, err := f.deckSvc.Start(123, "Greetings", domain.SampleEntries())
	require.NoError(t, err)
	_, err = f.deckSvc.Advance(123)
	require.NoError(t, err)

	f.dispatcher.On("Dispatch", mock.Anything).Return(fmt.Errorf("queue full"))

	_, err = f.service.Submit(123, domain.Submission{Topic: "Food", WebhookURL: "https://example.com/hook"})
	assert.ErrorIs(t, err, ErrDispatchFailed)

	view, err := f.deckSvc.View(123)
	require.NoError(t, err)
	assert.Equal(t, "Greetings", view.Topic)
	assert.Equal(t, 1, view.Index)

	f.users.AssertNotCalled(t, "SaveWebhookURL", mock.Anything, mock.Anything)
	f.decks.AssertExpectations(t)
}

func TestSubmissionService_RememberFailureIsNotFatal(t *testing.T) {
	f := newSubmissionFixture(t)

	f.dispatcher.On("Dispatch", mock.Anything).Return(nil)
	f.users.On("SaveWebhookURL", int64(123), "https://example.com/hook").Return(fmt.Errorf("db error"))
	f.decks.On("SaveSession", mock.AnythingOfType("*domain.Session")).Return(nil)

	view, err := f.service.Submit(123, domain.Submission{Topic: "Food", WebhookURL: "https://example.com/hook"})

	require.NoError(t, err)
	assert.Equal(t, "Food", view.Topic)
}

func TestSubmissionService_ValidateField(t *testing.T) {
	f := newSubmissionFixture(t)

	// other steps are not filled in yet
	assert.NoError(t, f.service.ValidateField(domain.Submission{Topic: "Animals"}, "Topic"))
	assert.Error(t, f.service.ValidateField(domain.Submission{Topic: ""}, "Topic"))
	assert.NoError(t, f.service.ValidateField(domain.Submission{WebhookURL: "http://localhost:5678/webhook"}, "WebhookURL"))
	assert.Error(t, f.service.ValidateField(domain.Submission{WebhookURL: "not a url"}, "WebhookURL"))

	assert.Error(t, f.service.Validate(domain.Submission{Topic: "Animals"}))
}

func TestSubmissionService_LastWebhookURL(t *testing.T) {
	f := newSubmissionFixture(t)
	f.users.On("GetWebhookURL", int64(123)).Return("https://example.com/hook", nil)

	webhookURL, err := f.service.LastWebhookURL(123)

	assert.NoError(t, err)
	assert.Equal(t, "https://example.com/hook", webhookURL)
	f.users.AssertExpectations(t)
}
