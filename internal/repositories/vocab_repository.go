package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amiramtracker/backend/internal/models"
	"go.uber.org/zap"
)

type vocabRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewVocabRepository creates a new vocabulary repository
func NewVocabRepository(db *sql.DB, logger *zap.Logger) *vocabRepository {
	return &vocabRepository{
		db:     db,
		logger: logger,
	}
}

// ListByUser returns every word of a user, newest first
func (r *vocabRepository) ListByUser(ctx context.Context, userID int) ([]models.VocabWord, error) {
	query := `
		SELECT id, user_id, english_word, hebrew_word, created_at
		FROM vocab_words
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to query vocab words", zap.Error(err))
		return nil, fmt.Errorf("failed to query vocab words: %w", err)
	}
	defer rows.Close()

	words := []models.VocabWord{}
	for rows.Next() {
		var w models.VocabWord
		if err := rows.Scan(&w.ID, &w.UserID, &w.EnglishWord, &w.HebrewWord, &w.CreatedAt); err != nil {
			r.logger.Error("failed to scan vocab word", zap.Error(err))
			return nil, fmt.Errorf("failed to scan vocab word: %w", err)
		}
		words = append(words, w)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating vocab words", zap.Error(err))
		return nil, fmt.Errorf("error iterating vocab words: %w", err)
	}

	return words, nil
}

// Create inserts a word and returns the stored row
func (r *vocabRepository) Create(ctx context.Context, word *models.VocabWord) (*models.VocabWord, error) {
	query := `
		INSERT INTO vocab_words (user_id, english_word, hebrew_word)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, word.UserID, word.EnglishWord, word.HebrewWord)
	if err != nil {
		r.logger.Error("failed to create vocab word", zap.Error(err))
		return nil, fmt.Errorf("failed to create vocab word: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	query = `
		SELECT id, user_id, english_word, hebrew_word, created_at
		FROM vocab_words
		WHERE id = ?
	`

	created := &models.VocabWord{}
	err = r.db.QueryRowContext(ctx, query, id).Scan(
		&created.ID,
		&created.UserID,
		&created.EnglishWord,
		&created.HebrewWord,
		&created.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("vocab word %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get vocab word", zap.Error(err))
		return nil, fmt.Errorf("failed to get vocab word: %w", err)
	}

	return created, nil
}

// CreateMany inserts words in a single transaction and returns how many were stored.
// Either every word is stored or none is.
func (r *vocabRepository) CreateMany(ctx context.Context, userID int, words []models.VocabWord) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO vocab_words (user_id, english_word, hebrew_word) VALUES (?, ?, ?)`)
	if err != nil {
		r.logger.Error("failed to prepare insert", zap.Error(err))
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range words {
		if _, err := stmt.ExecContext(ctx, userID, w.EnglishWord, w.HebrewWord); err != nil {
			r.logger.Error("failed to insert vocab word", zap.Error(err), zap.String("englishWord", w.EnglishWord))
			return 0, fmt.Errorf("failed to insert vocab word %q: %w", w.EnglishWord, err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit transaction", zap.Error(err))
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(words), nil
}

// Delete removes a word owned by the user
func (r *vocabRepository) Delete(ctx context.Context, id, userID int) error {
	return deleteOwned(ctx, r.db, r.logger, "vocab_words", id, userID)
}
