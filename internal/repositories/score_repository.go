package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amiramtracker/backend/internal/models"
	"go.uber.org/zap"
)

type scoreRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *sql.DB, logger *zap.Logger) *scoreRepository {
	return &scoreRepository{
		db:     db,
		logger: logger,
	}
}

// ListByUser returns every score of a user ordered by test date ascending.
// Rows sharing a date keep insertion order.
func (r *scoreRepository) ListByUser(ctx context.Context, userID int) ([]models.Score, error) {
	query := `
		SELECT id, user_id, date, score, created_at
		FROM scores
		WHERE user_id = ?
		ORDER BY date ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to query scores", zap.Error(err))
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	scores := []models.Score{}
	for rows.Next() {
		var s models.Score
		if err := rows.Scan(&s.ID, &s.UserID, &s.Date, &s.Score, &s.CreatedAt); err != nil {
			r.logger.Error("failed to scan score", zap.Error(err))
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating scores", zap.Error(err))
		return nil, fmt.Errorf("error iterating scores: %w", err)
	}

	return scores, nil
}

// Create inserts a score and returns the stored row
func (r *scoreRepository) Create(ctx context.Context, score *models.Score) (*models.Score, error) {
	query := `
		INSERT INTO scores (user_id, date, score)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, score.UserID, score.Date.Format(models.DateLayout), score.Score)
	if err != nil {
		r.logger.Error("failed to create score", zap.Error(err))
		return nil, fmt.Errorf("failed to create score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return r.getByID(ctx, int(id), score.UserID)
}

func (r *scoreRepository) getByID(ctx context.Context, id, userID int) (*models.Score, error) {
	query := `
		SELECT id, user_id, date, score, created_at
		FROM scores
		WHERE id = ? AND user_id = ?
	`

	s := &models.Score{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&s.ID, &s.UserID, &s.Date, &s.Score, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("score %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		r.logger.Error("failed to get score", zap.Error(err), zap.Int("id", id))
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	return s, nil
}

// Delete removes a score owned by the user
func (r *scoreRepository) Delete(ctx context.Context, id, userID int) error {
	return deleteOwned(ctx, r.db, r.logger, "scores", id, userID)
}
