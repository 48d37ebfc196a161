package handler

import (
	"errors"

	"flashcarder/internal/domain"
	"flashcarder/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgError         = "Something went wrong. Please try again later."
	msgAskPassword   = "Hi! This bot is private. Please send the password:"
	msgMainMenu      = "🏠 Main menu\n\nCreate a deck from a topic or go back to your current one."
	msgWrongPassword = "Wrong password, try again."
)

// handleStart handles /start command and the main menu button
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	// Ensure user exists in database
	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return c.Send(msgError)
	}

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgError)
	}

	if !authorized {
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingPassword})
		return c.Send(msgAskPassword)
	}

	h.ResetState(userID)

	if c.Callback() != nil {
		_ = c.Respond()
	}
	return c.Send(msgMainMenu, mainMenuMarkup())
}

// handlePassword checks a password sent by a user who is not authorized yet
func (h *Handler) handlePassword(c tele.Context, userID int64, text string) error {
	if err := h.authService.Unlock(userID, text); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			return c.Send(msgWrongPassword)
		}
		h.logger.Error("Failed to authorize user", zap.Error(err))
		return c.Send(msgError)
	}

	h.logger.Info("User authorized", zap.Int64("user_id", userID))
	h.ResetState(userID)

	// the password should not stay in the chat history
	if err := c.Delete(); err != nil {
		h.logger.Debug("Failed to delete password message", zap.Error(err))
	}

	return c.Send("✅ Access granted!\n\n"+msgMainMenu, mainMenuMarkup())
}
