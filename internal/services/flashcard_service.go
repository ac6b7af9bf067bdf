package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/amiramtracker/backend/internal/flashcards"
	"github.com/amiramtracker/backend/internal/models"
	"go.uber.org/zap"
)

// WordLister is the interface that wraps the read side of VocabWord table data access
type WordLister interface {
	// Method ListByUser retrieves every word of a user, newest first.
	//
	// "userID" parameter is used to identify the owner.
	//
	// If no records are found, an empty slice will be returned.
	ListByUser(ctx context.Context, userID int) ([]models.VocabWord, error)
}

type flashcardService struct {
	words   WordLister
	sampler *flashcards.Sampler
	store   *flashcards.Store
	logger  *zap.Logger
}

// NewFlashcardService creates a new flashcard service
func NewFlashcardService(words WordLister, sampler *flashcards.Sampler, store *flashcards.Store, logger *zap.Logger) *flashcardService {
	return &flashcardService{
		words:   words,
		sampler: sampler,
		store:   store,
		logger:  logger,
	}
}

// Current returns the deck of a user, drawing one on first access
func (s *flashcardService) Current(ctx context.Context, userID int) (*models.DeckResponse, error) {
	if deck, ok := s.store.Get(userID); ok {
		snapshot := deck.Snapshot()
		return &snapshot, nil
	}
	return s.draw(ctx, userID)
}

// Reshuffle draws a new deck from the current word list
func (s *flashcardService) Reshuffle(ctx context.Context, userID int) (*models.DeckResponse, error) {
	return s.draw(ctx, userID)
}

// Flip toggles a single card of the current deck
func (s *flashcardService) Flip(ctx context.Context, userID, wordID int) (*models.FlipResponse, error) {
	deck, ok := s.store.Get(userID)
	if !ok {
		return nil, fmt.Errorf("deck: %w", models.ErrNotFound)
	}

	revealed, err := deck.Toggle(wordID)
	if errors.Is(err, flashcards.ErrCardNotInDeck) {
		return nil, fmt.Errorf("card %d: %w", wordID, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &models.FlipResponse{WordID: wordID, Revealed: revealed}, nil
}

// Refresh redraws the deck after the word list changed.
// On failure the stale deck is dropped so the next read reloads it.
func (s *flashcardService) Refresh(ctx context.Context, userID int) error {
	if _, err := s.draw(ctx, userID); err != nil {
		s.store.Delete(userID)
		return err
	}
	return nil
}

// Drop discards the deck of a user
func (s *flashcardService) Drop(userID int) {
	s.store.Delete(userID)
}

func (s *flashcardService) draw(ctx context.Context, userID int) (*models.DeckResponse, error) {
	words, err := s.words.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load words: %w", err)
	}

	deck := flashcards.NewDeck(s.sampler.Sample(words, flashcards.DeckSize), len(words))
	s.store.Set(userID, deck)

	s.logger.Debug("flashcard deck drawn", zap.Int("userId", userID), zap.Int("cards", deck.Len()), zap.Int("totalWords", len(words)))

	snapshot := deck.Snapshot()
	return &snapshot, nil
}
