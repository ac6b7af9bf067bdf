package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/amiramtracker/backend/internal/models"
	"github.com/amiramtracker/backend/internal/services"
	"github.com/amiramtracker/backend/internal/stats"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ScoreService defines methods for score business logic
type ScoreService interface {
	// List retrieves every score of a user in ascending date order.
	//
	// If no records are found, an empty slice will be returned.
	List(ctx context.Context, userID int) ([]models.Score, error)
	// Create validates and stores a new score and returns the stored row.
	//
	// Invalid input yields models.ErrValidation and nothing is stored.
	Create(ctx context.Context, userID int, req *models.CreateScoreRequest) (*models.Score, error)
	// Delete removes a score of the user.
	//
	// If the score does not exist or belongs to another user, models.ErrNotFound is returned.
	Delete(ctx context.Context, userID, scoreID int) error
	// Statistics computes the score summary of a user.
	Statistics(ctx context.Context, userID int) (*services.StatisticsResponse, error)
	// Levels returns the level band table.
	Levels() []stats.LevelBand
}

// ScoreHandler handles score requests
type ScoreHandler struct {
	BaseHandler
	service ScoreService
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(service ScoreService, logger *zap.Logger) *ScoreHandler {
	return &ScoreHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all score handler routes
func (h *ScoreHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/levels", h.GetLevels)
	r.Route("/scores", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListScores)
		r.Post("/", h.CreateScore)
		r.Get("/statistics", h.GetStatistics)
		r.Delete("/{id}", h.DeleteScore)
	})
}

// ListScores handles GET /api/v1/scores
// @Summary List scores
// @Description Return every score of the authenticated user ordered by test date ascending.
// @Tags scores
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.Score
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /scores [get]
func (h *ScoreHandler) ListScores(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	scores, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err, "list scores")
		return
	}

	h.RespondJSON(w, http.StatusOK, scores)
}

// CreateScore handles POST /api/v1/scores
// @Summary Log a score
// @Description Store a test score between 50 and 150 taken on a YYYY-MM-DD date.
// @Tags scores
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateScoreRequest true "Score"
// @Success 201 {object} models.Score
// @Failure 400 {object} map[string]string "Invalid request body, date or score"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /scores [post]
func (h *ScoreHandler) CreateScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	score, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "create score")
		return
	}

	h.RespondJSON(w, http.StatusCreated, score)
}

// DeleteScore handles DELETE /api/v1/scores/{id}
// @Summary Delete a score
// @Tags scores
// @Security ApiKeyAuth
// @Param id path int true "Score ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Score not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /scores/{id} [delete]
func (h *ScoreHandler) DeleteScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	scoreID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, scoreID); err != nil {
		h.RespondServiceError(w, r, err, "delete score")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStatistics handles GET /api/v1/scores/statistics
// @Summary Score statistics
// @Description Return count, max, average, first, last, improvement, recent average and level. Metrics are null when there are no scores.
// @Tags scores
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} services.StatisticsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /scores/statistics [get]
func (h *ScoreHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	statistics, err := h.service.Statistics(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err, "compute statistics")
		return
	}

	h.RespondJSON(w, http.StatusOK, statistics)
}

// GetLevels handles GET /api/v1/levels
// @Summary Level bands
// @Description Return the static level table with the courses each level still requires.
// @Tags scores
// @Produce json
// @Success 200 {array} stats.LevelBand
// @Router /levels [get]
func (h *ScoreHandler) GetLevels(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, h.service.Levels())
}
