package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/amiramtracker/backend/internal/importer"
	"github.com/amiramtracker/backend/internal/models"
	"github.com/amiramtracker/backend/internal/validator"
	"go.uber.org/zap"
)

// VocabRepository is the interface that wraps methods for VocabWord table data access
type VocabRepository interface {
	WordLister
	// Method Create inserts a new word and returns the stored row.
	//
	// "word" parameter must carry the owner and both trimmed, non-empty sides.
	Create(ctx context.Context, word *models.VocabWord) (*models.VocabWord, error)
	// Method CreateMany inserts several words of one user atomically.
	//
	// It returns the number of stored words. On error nothing is stored.
	CreateMany(ctx context.Context, userID int, words []models.VocabWord) (int, error)
	// Method Delete deletes a word by id scoped to its owner.
	//
	// If no such word belongs to the user, models.ErrNotFound is returned.
	Delete(ctx context.Context, id, userID int) error
}

// DeckRefresher redraws the flashcard deck of a user after the word list changed
type DeckRefresher interface {
	Refresh(ctx context.Context, userID int) error
}

type vocabService struct {
	repo   VocabRepository
	decks  DeckRefresher
	logger *zap.Logger
}

// NewVocabService creates a new vocabulary service
func NewVocabService(repo VocabRepository, decks DeckRefresher, logger *zap.Logger) *vocabService {
	return &vocabService{
		repo:   repo,
		decks:  decks,
		logger: logger,
	}
}

// List returns the words of a user, newest first
func (s *vocabService) List(ctx context.Context, userID int) ([]models.VocabWord, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create trims, validates and stores a new word, then redraws the deck
func (s *vocabService) Create(ctx context.Context, userID int, req *models.CreateVocabWordRequest) (*models.VocabWord, error) {
	req.EnglishWord = strings.TrimSpace(req.EnglishWord)
	req.HebrewWord = strings.TrimSpace(req.HebrewWord)

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	created, err := s.repo.Create(ctx, &models.VocabWord{
		UserID:      userID,
		EnglishWord: req.EnglishWord,
		HebrewWord:  req.HebrewWord,
	})
	if err != nil {
		return nil, err
	}

	s.refresh(ctx, userID)
	return created, nil
}

// Delete removes a word of the user, then redraws the deck
func (s *vocabService) Delete(ctx context.Context, userID, wordID int) error {
	if wordID <= 0 {
		return fmt.Errorf("%w: invalid word id", models.ErrValidation)
	}

	if err := s.repo.Delete(ctx, wordID, userID); err != nil {
		return err
	}

	s.refresh(ctx, userID)
	return nil
}

// Import adds every complete row of an .xlsx workbook and redraws the deck if anything was stored
func (s *vocabService) Import(ctx context.Context, userID int, workbook io.Reader) (*models.ImportResult, error) {
	parsed, err := importer.ParseVocabWorkbook(workbook)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.CreateMany(ctx, userID, parsed.Words)
	if err != nil {
		return nil, err
	}

	if created > 0 {
		s.refresh(ctx, userID)
	}

	s.logger.Info("vocabulary imported",
		zap.Int("userId", userID),
		zap.Int("processed", parsed.Processed),
		zap.Int("created", created),
		zap.Int("skipped", parsed.Skipped),
	)

	return &models.ImportResult{
		Processed: parsed.Processed,
		Created:   created,
		Skipped:   parsed.Skipped,
		Errors:    parsed.Errors,
	}, nil
}

// refresh redraws the deck. The mutation already succeeded, so a failure is only logged.
func (s *vocabService) refresh(ctx context.Context, userID int) {
	if err := s.decks.Refresh(ctx, userID); err != nil {
		s.logger.Warn("failed to refresh flashcard deck", zap.Int("userId", userID), zap.Error(err))
	}
}
