package handler

import (
	"errors"
	"fmt"
	"strings"

	"flashcarder/internal/domain"
	"flashcarder/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgAskTopic    = "📝 Which vocabulary topic do you want to learn?\n\nFor example: Animals, Food, Colors"
	msgAskWebhook  = "🔗 Send the webhook URL that should receive the request,\ne.g. https://your-webhook-url.com/endpoint"
	msgAskSecret   = "🔑 Send the secret key for the webhook, or /skip if it has none."
	msgIdleHint    = "Use /new to create a flashcard deck or /card to continue the current one."
	msgDispatchErr = "❌ Could not call the webhook. Please check the URL and try again."
	msgRequestSent = "📨 Request sent to the webhook. Check your webhook for the response.\n\nHere is your deck:"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())
	state := h.GetState(userID)

	// Unknown commands are ignored, except as a secret key which may start with /
	if strings.HasPrefix(text, "/") && state.State != domain.StateWaitingSecret {
		return nil
	}

	if err := h.authService.EnsureUserExists(userID); err != nil {
		h.logger.Error("Failed to ensure user exists", zap.Error(err))
		return nil
	}

	authorized, err := h.authService.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(msgError)
	}

	if !authorized {
		return h.handlePassword(c, userID, text)
	}

	switch state.State {
	case domain.StateWaitingTopic:
		return h.acceptTopic(c, userID, text)
	case domain.StateWaitingWebhook:
		return h.acceptWebhook(c, userID, state, text)
	case domain.StateWaitingSecret:
		switch commandName(text) {
		case "/skip":
			return h.handleSkip(c)
		case "/cancel":
			return h.handleCancel(c)
		}
		// the secret should not stay in the chat history
		if err := c.Delete(); err != nil {
			h.logger.Debug("Failed to delete secret message", zap.Error(err))
		}
		return h.submit(c, userID, state.Submission(c.Text()))
	default:
		return c.Send(msgIdleHint, mainMenuMarkup())
	}
}

// handleNewDeck starts the deck form
func (h *Handler) handleNewDeck(c tele.Context) error {
	userID := c.Sender().ID

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingTopic})

	if c.Callback() != nil {
		_ = c.Respond()
	}
	return c.Send(msgAskTopic, cancelMarkup())
}

func (h *Handler) acceptTopic(c tele.Context, userID int64, text string) error {
	sub := domain.Submission{Topic: text}
	if err := h.submissionService.ValidateField(sub, "Topic"); err != nil {
		return c.Send(validationText(err), cancelMarkup())
	}

	h.SetState(userID, &domain.StateData{
		State: domain.StateWaitingWebhook,
		Topic: sub.Normalize().Topic,
	})

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	saved, err := h.submissionService.LastWebhookURL(userID)
	if err != nil {
		h.logger.Warn("Failed to load previous webhook URL", zap.Error(err), zap.Int64("user_id", userID))
	}
	if saved != "" {
		rows = append(rows, markup.Row(btnUseSavedWebhook))
	}
	rows = append(rows, markup.Row(btnCancel))
	markup.Inline(rows...)

	return c.Send(msgAskWebhook, markup)
}

func (h *Handler) acceptWebhook(c tele.Context, userID int64, state *domain.StateData, text string) error {
	sub := domain.Submission{Topic: state.Topic, WebhookURL: text}
	if err := h.submissionService.ValidateField(sub, "WebhookURL"); err != nil {
		return c.Send(validationText(err), cancelMarkup())
	}

	h.SetState(userID, &domain.StateData{
		State:      domain.StateWaitingSecret,
		Topic:      state.Topic,
		WebhookURL: sub.Normalize().WebhookURL,
	})

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnSkipSecret),
		markup.Row(btnCancel),
	)
	return c.Send(msgAskSecret, markup)
}

// handleUseSavedWebhook fills the webhook step with the previous endpoint
func (h *Handler) handleUseSavedWebhook(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	if state.State != domain.StateWaitingWebhook {
		return c.Respond(&tele.CallbackResponse{Text: "This form is no longer active"})
	}

	saved, err := h.submissionService.LastWebhookURL(userID)
	if err != nil || saved == "" {
		if err != nil {
			h.logger.Error("Failed to load previous webhook URL", zap.Error(err))
		}
		return c.Respond(&tele.CallbackResponse{Text: "No previous webhook found"})
	}

	_ = c.Respond()
	return h.acceptWebhook(c, userID, state, saved)
}

// handleSkip submits the form without a secret key
func (h *Handler) handleSkip(c tele.Context) error {
	userID := c.Sender().ID
	state := h.GetState(userID)

	if c.Callback() != nil {
		_ = c.Respond()
	}

	if state.State != domain.StateWaitingSecret {
		return c.Send(msgIdleHint)
	}
	return h.submit(c, userID, state.Submission(""))
}

// handleCancel aborts the form and goes back to the main menu
func (h *Handler) handleCancel(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)

	if c.Callback() == nil {
		return c.Send(msgMainMenu, mainMenuMarkup())
	}

	if err := c.Edit(msgMainMenu, mainMenuMarkup()); err != nil {
		if handleErr := h.handleEditError(err, c, userID); handleErr == nil {
			return nil
		}
		return c.Send(msgMainMenu, mainMenuMarkup())
	}
	return c.Respond()
}

// submit fires the webhook and shows the new deck. Any failure keeps the current deck.
func (h *Handler) submit(c tele.Context, userID int64, sub domain.Submission) error {
	view, err := h.submissionService.Submit(userID, sub)

	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.ResetState(userID)
		return c.Send(validationText(err)+"\n\nUse /new to start over.", mainMenuMarkup())
	case err != nil:
		h.logger.Error("Failed to submit deck request",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
		h.ResetState(userID)
		return c.Send(msgDispatchErr, mainMenuMarkup())
	}

	h.ResetState(userID)

	if err := c.Send(msgRequestSent); err != nil {
		return err
	}
	return c.Send(cardText(view), cardMarkup(view))
}

// commandName strips a "@botname" suffix, e.g. "/skip@flashcarder_bot" -> "/skip"
func commandName(text string) string {
	name, _, _ := strings.Cut(text, "@")
	return name
}

// validationText turns a validation error into a message for the user
func validationText(err error) string {
	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		return "⚠️ " + strings.Join(validationErr.Messages, "\n⚠️ ")
	}
	return fmt.Sprintf("⚠️ %v", err)
}
