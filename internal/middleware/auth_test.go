package middleware

import (
	"errors"
	"testing"

	"flashcarder/internal/service"
	"flashcarder/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v3"
)

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name         string
		callback     bool
		authorized   bool
		ensureErr    error
		authErr      error
		expectNext   bool
		expectedText string
	}{
		{
			name:       "authorized user passes",
			authorized: true,
			expectNext: true,
		},
		{
			name:         "unauthorized command",
			authorized:   false,
			expectedText: msgNeedsAccess,
		},
		{
			name:         "unauthorized button",
			callback:     true,
			authorized:   false,
			expectedText: msgNeedsAccess,
		},
		{
			name:         "ensure user fails",
			ensureErr:    errors.New("db down"),
			expectedText: msgError,
		},
		{
			name:         "authorization check fails",
			authErr:      errors.New("db down"),
			expectedText: msgError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(testutil.MockUserRepository)
			users.On("EnsureUserExists", int64(7)).Return(tt.ensureErr)
			users.On("IsAuthorized", int64(7)).Return(tt.authorized, tt.authErr).Maybe()

			auth := service.NewAuthService(users, "secret")
			called := false
			next := func(c tele.Context) error {
				called = true
				return nil
			}

			var c *testutil.FakeContext
			if tt.callback {
				c = testutil.NewFakeCallback(7, "card_next", "")
			} else {
				c = testutil.NewFakeMessage(7, "/card")
			}

			err := AuthMiddleware(auth, testutil.NewTestLogger())(next)(c)
			require.NoError(t, err)
			assert.Equal(t, tt.expectNext, called)

			switch {
			case tt.expectNext:
				assert.Empty(t, c.Sent)
				assert.Empty(t, c.Answers)
			case tt.callback:
				require.Len(t, c.Answers, 1)
				assert.Equal(t, tt.expectedText, c.Answers[0].Text)
				assert.True(t, c.Answers[0].ShowAlert)
			default:
				assert.Equal(t, tt.expectedText, c.LastSent())
			}
		})
	}
}
