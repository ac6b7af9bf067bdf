package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amiramtracker/backend/internal/models"
	"github.com/amiramtracker/backend/internal/services"
	"github.com/amiramtracker/backend/internal/stats"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupScoreRouter(svc *mockScoreService) *chi.Mux {
	r := chi.NewRouter()
	NewScoreHandler(svc, zap.NewNop()).RegisterRoutes(r, fakeAuth)
	return r
}

func TestScoreHandler_ListScores(t *testing.T) {
	date := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		svc            *mockScoreService
		expectedStatus int
		expectedCount  int
	}{
		{
			name:           "success",
			svc:            &mockScoreService{scores: []models.Score{{ID: 1, Date: date, Score: 100}, {ID: 2, Date: date, Score: 110}}},
			expectedStatus: http.StatusOK,
			expectedCount:  2,
		},
		{
			name:           "empty list",
			svc:            &mockScoreService{scores: []models.Score{}},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "service error",
			svc:            &mockScoreService{err: errors.New("database error")},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			setupScoreRouter(tt.svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scores", nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var scores []models.Score
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scores))
				assert.Len(t, scores, tt.expectedCount)
			}
		})
	}
}

func TestScoreHandler_CreateScore(t *testing.T) {
	created := &models.Score{ID: 5, Date: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), Score: 118}

	tests := []struct {
		name           string
		body           string
		svc            *mockScoreService
		expectedStatus int
	}{
		{name: "success", body: `{"date":"2025-04-02","score":118}`, svc: &mockScoreService{created: created}, expectedStatus: http.StatusCreated},
		{name: "invalid body", body: `{"score":"high"}`, svc: &mockScoreService{}, expectedStatus: http.StatusBadRequest},
		{name: "out of range", body: `{"date":"2025-04-02","score":200}`, svc: &mockScoreService{err: models.ErrValidation}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			setupScoreRouter(tt.svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scores", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusCreated {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "2025-04-02", body["date"])
			}
		})
	}
}

func TestScoreHandler_DeleteScore(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		svc            *mockScoreService
		expectedStatus int
		expectedID     int
	}{
		{name: "success", path: "/scores/3", svc: &mockScoreService{}, expectedStatus: http.StatusNoContent, expectedID: 3},
		{name: "non numeric id", path: "/scores/abc", svc: &mockScoreService{}, expectedStatus: http.StatusBadRequest},
		{name: "not found", path: "/scores/3", svc: &mockScoreService{err: models.ErrNotFound}, expectedStatus: http.StatusNotFound, expectedID: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			setupScoreRouter(tt.svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedID, tt.svc.deletedID)
		})
	}
}

func TestScoreHandler_GetStatistics(t *testing.T) {
	t.Run("no data", func(t *testing.T) {
		svc := &mockScoreService{statistics: &services.StatisticsResponse{LevelLabel: stats.NoDataLabel, Scores: []models.Score{}}}
		rec := httptest.NewRecorder()

		setupScoreRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scores/statistics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Nil(t, body["average"])
		assert.Nil(t, body["level"])
		assert.Equal(t, stats.NoDataLabel, body["levelLabel"])
	})

	t.Run("service error", func(t *testing.T) {
		rec := httptest.NewRecorder()

		setupScoreRouter(&mockScoreService{err: errors.New("database error")}).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scores/statistics", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestScoreHandler_GetLevels(t *testing.T) {
	rec := httptest.NewRecorder()

	setupScoreRouter(&mockScoreService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/levels", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var levels []stats.LevelBand
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &levels))
	assert.Equal(t, stats.Levels(), levels)
}
