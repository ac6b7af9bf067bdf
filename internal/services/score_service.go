package services

import (
	"context"
	"fmt"
	"time"

	"github.com/amiramtracker/backend/internal/models"
	"github.com/amiramtracker/backend/internal/stats"
	"github.com/amiramtracker/backend/internal/validator"
	"go.uber.org/zap"
)

// ScoreRepository is the interface that wraps methods for Score table data access
type ScoreRepository interface {
	// Method ListByUser retrieves every score of a user ordered by date ascending.
	//
	// "userID" parameter is used to identify the owner.
	//
	// If no records are found, an empty slice will be returned.
	ListByUser(ctx context.Context, userID int) ([]models.Score, error)
	// Method Create inserts a new score and returns the stored row.
	//
	// "score" parameter must carry the owner, the test date and a validated value.
	Create(ctx context.Context, score *models.Score) (*models.Score, error)
	// Method Delete deletes a score by id scoped to its owner.
	//
	// If no such score belongs to the user, models.ErrNotFound is returned.
	Delete(ctx context.Context, id, userID int) error
}

// StatisticsResponse is the score summary of a user.
// Every metric is null when the user has no scores and LevelLabel then holds a placeholder.
type StatisticsResponse struct {
	Count         int              `json:"count"`
	Max           *int             `json:"max"`
	Average       *float64         `json:"average"`
	First         *int             `json:"first"`
	Last          *int             `json:"last"`
	Improvement   *int             `json:"improvement"`
	RecentAverage *float64         `json:"recentAverage"`
	Level         *stats.LevelBand `json:"level"`
	LevelLabel    string           `json:"levelLabel"`
	Scores        []models.Score   `json:"scores"`
}

type scoreService struct {
	repo   ScoreRepository
	logger *zap.Logger
}

// NewScoreService creates a new score service
func NewScoreService(repo ScoreRepository, logger *zap.Logger) *scoreService {
	return &scoreService{
		repo:   repo,
		logger: logger,
	}
}

// List returns the scores of a user in ascending date order
func (s *scoreService) List(ctx context.Context, userID int) ([]models.Score, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Create validates and stores a new score
func (s *scoreService) Create(ctx context.Context, userID int, req *models.CreateScoreRequest) (*models.Score, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	date, err := time.ParseInLocation(models.DateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be a date in %s format", models.ErrValidation, models.DateLayout)
	}

	created, err := s.repo.Create(ctx, &models.Score{
		UserID: userID,
		Date:   date,
		Score:  req.Score,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("score created", zap.Int("userId", userID), zap.Int("scoreId", created.ID), zap.Int("score", created.Score))
	return created, nil
}

// Delete removes a score of the user
func (s *scoreService) Delete(ctx context.Context, userID, scoreID int) error {
	if scoreID <= 0 {
		return fmt.Errorf("%w: invalid score id", models.ErrValidation)
	}
	return s.repo.Delete(ctx, scoreID, userID)
}

// Statistics computes the score summary of a user
func (s *scoreService) Statistics(ctx context.Context, userID int) (*StatisticsResponse, error) {
	scores, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, ok := stats.Compute(scores)
	if !ok {
		return &StatisticsResponse{
			LevelLabel: stats.NoDataLabel,
			Scores:     []models.Score{},
		}, nil
	}

	return &StatisticsResponse{
		Count:         summary.Count,
		Max:           &summary.Max,
		Average:       &summary.Average,
		First:         &summary.First,
		Last:          &summary.Last,
		Improvement:   &summary.Improvement,
		RecentAverage: &summary.RecentAverage,
		Level:         &summary.Level,
		LevelLabel:    summary.Level.Name,
		Scores:        summary.Sorted,
	}, nil
}

// Levels returns the level band table
func (s *scoreService) Levels() []stats.LevelBand {
	return stats.Levels()
}
