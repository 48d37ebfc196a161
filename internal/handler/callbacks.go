package handler

import (
	"errors"
	"strings"
	"unicode"

	"flashcarder/internal/domain"
	"flashcarder/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// splitCallbackData splits raw "\funique|data" into its parts
func splitCallbackData(raw string) (unique, data string) {
	raw = cleanCallbackData(raw)
	unique, data, _ = strings.Cut(raw, "|")
	return unique, data
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Same text and markup, e.g. marking an already remembered card
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Card already up to date, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles callbacks that did not match a registered button
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	unique, data := callback.Unique, cleanCallbackData(callback.Data)
	if unique == "" {
		unique, data = splitCallbackData(callback.Data)
	}

	h.logger.Debug("handleCallback: Processing callback",
		zap.String("unique", unique),
		zap.String("data", data),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch unique {
	case btnPrev.Unique:
		return h.handlePrev(c)
	case btnNext.Unique:
		return h.handleNext(c)
	case btnFlip.Unique:
		return h.handleFlip(c)
	case btnRemembered.Unique:
		return h.handleRemembered(c)
	case btnDifficulty.Unique:
		return h.applyDifficulty(c, data)
	case btnNewDeck.Unique:
		return h.handleNewDeck(c)
	case btnShowCard.Unique:
		return h.handleShowCard(c)
	case btnCancel.Unique:
		return h.handleCancel(c)
	case btnMainMenu.Unique:
		return h.handleStart(c)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", callback.Data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleShowCard sends the current card of the user's deck as a new message
func (h *Handler) handleShowCard(c tele.Context) error {
	userID := c.Sender().ID

	view, err := h.deckService.View(userID)
	if err != nil {
		return h.respondDeckError(c, userID, err)
	}

	if c.Callback() != nil {
		_ = c.Respond()
	}
	return c.Send(cardText(view), cardMarkup(view))
}

func (h *Handler) handlePrev(c tele.Context) error {
	view, err := h.deckService.Retreat(c.Sender().ID)
	return h.renderCard(c, view, err)
}

func (h *Handler) handleNext(c tele.Context) error {
	view, err := h.deckService.Advance(c.Sender().ID)
	return h.renderCard(c, view, err)
}

func (h *Handler) handleFlip(c tele.Context) error {
	view, err := h.deckService.Flip(c.Sender().ID)
	return h.renderCard(c, view, err)
}

func (h *Handler) handleRemembered(c tele.Context) error {
	view, err := h.deckService.ToggleRemembered(c.Sender().ID)
	return h.renderCard(c, view, err)
}

func (h *Handler) handleDifficulty(c tele.Context) error {
	return h.applyDifficulty(c, cleanCallbackData(c.Callback().Data))
}

func (h *Handler) applyDifficulty(c tele.Context, data string) error {
	level, err := domain.ParseDifficulty(data)
	if err != nil {
		h.logger.Warn("Bad difficulty in callback", zap.String("data", data))
		return c.Respond(&tele.CallbackResponse{Text: "Unknown difficulty"})
	}

	view, err := h.deckService.SetDifficulty(c.Sender().ID, level)
	return h.renderCard(c, view, err)
}

// renderCard edits the card message in place after a card operation
func (h *Handler) renderCard(c tele.Context, view domain.CardView, opErr error) error {
	userID := c.Sender().ID

	if opErr != nil {
		return h.respondDeckError(c, userID, opErr)
	}

	text, markup := cardText(view), cardMarkup(view)
	if c.Callback() == nil {
		return c.Send(text, markup)
	}

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil // Message was already up to date, just acknowledged
		}
		return c.Send(text, markup)
	}
	return c.Respond()
}

// respondDeckError answers a card operation that could not be applied
func (h *Handler) respondDeckError(c tele.Context, userID int64, err error) error {
	var text string
	switch {
	case errors.Is(err, service.ErrNavigationDisabled):
		text = "This deck has a single card"
	case errors.Is(err, domain.ErrNoSession):
		text = "No deck yet. Use /new to create one"
	default:
		h.logger.Error("Card operation failed", zap.Error(err), zap.Int64("user_id", userID))
		text = "Error while updating the card"
	}

	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
