package handler

import (
	"sync"

	"flashcarder/internal/domain"
	"flashcarder/internal/middleware"
	"flashcarder/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot               *tele.Bot
	authService       *service.AuthService
	deckService       *service.DeckService
	submissionService *service.SubmissionService
	logger            *zap.Logger

	// Deck form progress per user (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	authService *service.AuthService,
	deckService *service.DeckService,
	submissionService *service.SubmissionService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:               bot,
		authService:       authService,
		deckService:       deckService,
		submissionService: submissionService,
		logger:            logger,
		states:            make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Open to everyone: greeting and password entry
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle(tele.OnText, h.handleText)

	// Everything else requires an authorized user
	authed := h.bot.Group()
	authed.Use(middleware.AuthMiddleware(h.authService, h.logger))

	authed.Handle("/new", h.handleNewDeck)
	authed.Handle("/card", h.handleShowCard)
	authed.Handle("/skip", h.handleSkip)
	authed.Handle("/cancel", h.handleCancel)

	authed.Handle(&btnNewDeck, h.handleNewDeck)
	authed.Handle(&btnShowCard, h.handleShowCard)
	authed.Handle(&btnUseSavedWebhook, h.handleUseSavedWebhook)
	authed.Handle(&btnSkipSecret, h.handleSkip)
	authed.Handle(&btnCancel, h.handleCancel)
	authed.Handle(&btnMainMenu, h.handleStart)

	authed.Handle(&btnPrev, h.handlePrev)
	authed.Handle(&btnNext, h.handleNext)
	authed.Handle(&btnFlip, h.handleFlip)
	authed.Handle(&btnRemembered, h.handleRemembered)
	authed.Handle(&btnDifficulty, h.handleDifficulty)

	// Generic callback handler for buttons whose Unique got lost
	authed.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// Inline keyboard buttons
var (
	btnNewDeck = tele.Btn{
		Unique: "new_deck",
		Text:   "🆕 New deck",
	}
	btnShowCard = tele.Btn{
		Unique: "show_card",
		Text:   "🃏 Current deck",
	}
	btnUseSavedWebhook = tele.Btn{
		Unique: "use_saved_webhook",
		Text:   "🔗 Use previous webhook",
	}
	btnSkipSecret = tele.Btn{
		Unique: "skip_secret",
		Text:   "⏭ No secret key",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}

	// Card controls; labels are set per render
	btnPrev       = tele.Btn{Unique: "card_prev"}
	btnNext       = tele.Btn{Unique: "card_next"}
	btnFlip       = tele.Btn{Unique: "card_flip"}
	btnRemembered = tele.Btn{Unique: "card_remembered"}
	btnDifficulty = tele.Btn{Unique: "card_difficulty"}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnNewDeck),
		menu.Row(btnShowCard),
	)
	return menu
}

// cancelMarkup returns a keyboard with a single cancel button
func cancelMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return markup
}
