package handlers

import (
	"context"
	"net/http"

	"github.com/amiramtracker/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// FlashcardService defines methods for flashcard business logic
type FlashcardService interface {
	// Current returns the deck of a user, drawing one from the word list on first access.
	Current(ctx context.Context, userID int) (*models.DeckResponse, error)
	// Reshuffle draws a new deck with every card unrevealed.
	Reshuffle(ctx context.Context, userID int) (*models.DeckResponse, error)
	// Flip toggles one card of the current deck.
	//
	// If there is no deck or the word is not in it, models.ErrNotFound is returned.
	Flip(ctx context.Context, userID, wordID int) (*models.FlipResponse, error)
}

// FlashcardHandler handles flashcard requests
type FlashcardHandler struct {
	BaseHandler
	service FlashcardService
}

// NewFlashcardHandler creates a new flashcard handler
func NewFlashcardHandler(service FlashcardService, logger *zap.Logger) *FlashcardHandler {
	return &FlashcardHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all flashcard handler routes
func (h *FlashcardHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/flashcards", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetDeck)
		r.Post("/shuffle", h.Shuffle)
		r.Post("/{wordId}/flip", h.Flip)
	})
}

// GetDeck handles GET /api/v1/flashcards
// @Summary Current flashcards
// @Description Return up to 9 randomly drawn words. The deck is drawn on first access and kept until reshuffled or the word list changes.
// @Tags flashcards
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.DeckResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /flashcards [get]
func (h *FlashcardHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	deck, err := h.service.Current(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err, "get flashcards")
		return
	}

	h.RespondJSON(w, http.StatusOK, deck)
}

// Shuffle handles POST /api/v1/flashcards/shuffle
// @Summary Reshuffle flashcards
// @Description Draw a new random deck. Every card starts on its English side.
// @Tags flashcards
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.DeckResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /flashcards/shuffle [post]
func (h *FlashcardHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	deck, err := h.service.Reshuffle(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err, "shuffle flashcards")
		return
	}

	h.RespondJSON(w, http.StatusOK, deck)
}

// Flip handles POST /api/v1/flashcards/{wordId}/flip
// @Summary Flip a card
// @Description Toggle one card between its English and Hebrew side.
// @Tags flashcards
// @Produce json
// @Security ApiKeyAuth
// @Param wordId path int true "Word ID"
// @Success 200 {object} models.FlipResponse
// @Failure 400 {object} map[string]string "Invalid word id"
// @Failure 404 {object} map[string]string "Card not in current deck"
// @Router /flashcards/{wordId}/flip [post]
func (h *FlashcardHandler) Flip(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	wordID, ok := h.pathID(w, r, "wordId")
	if !ok {
		return
	}

	flip, err := h.service.Flip(r.Context(), userID, wordID)
	if err != nil {
		h.RespondServiceError(w, r, err, "flip card")
		return
	}

	h.RespondJSON(w, http.StatusOK, flip)
}
