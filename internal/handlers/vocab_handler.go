package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/amiramtracker/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxImportSize bounds the whole multipart body of a workbook upload
const maxImportSize = 5 << 20

// VocabService defines methods for vocabulary business logic
type VocabService interface {
	// List retrieves every word of a user, newest first.
	List(ctx context.Context, userID int) ([]models.VocabWord, error)
	// Create trims and validates a word, stores it and redraws the flashcard deck.
	//
	// Empty sides yield models.ErrValidation and nothing is stored.
	Create(ctx context.Context, userID int, req *models.CreateVocabWordRequest) (*models.VocabWord, error)
	// Delete removes a word of the user and redraws the flashcard deck.
	//
	// If the word does not exist or belongs to another user, models.ErrNotFound is returned.
	Delete(ctx context.Context, userID, wordID int) error
	// Import adds every complete row of an .xlsx workbook.
	//
	// "workbook" holds English words in column A and Hebrew words in column B below a header row.
	Import(ctx context.Context, userID int, workbook io.Reader) (*models.ImportResult, error)
}

// VocabHandler handles vocabulary requests
type VocabHandler struct {
	BaseHandler
	service VocabService
}

// NewVocabHandler creates a new vocabulary handler
func NewVocabHandler(service VocabService, logger *zap.Logger) *VocabHandler {
	return &VocabHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all vocabulary handler routes
func (h *VocabHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/vocab", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListWords)
		r.Post("/", h.CreateWord)
		r.Post("/import", h.ImportWords)
		r.Delete("/{id}", h.DeleteWord)
	})
}

// ListWords handles GET /api/v1/vocab
// @Summary List words
// @Description Return every word of the authenticated user, newest first.
// @Tags vocab
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.VocabWord
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocab [get]
func (h *VocabHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	words, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.RespondServiceError(w, r, err, "list words")
		return
	}

	h.RespondJSON(w, http.StatusOK, words)
}

// CreateWord handles POST /api/v1/vocab
// @Summary Add a word
// @Description Store an English word with its Hebrew translation. Both sides are trimmed and required.
// @Tags vocab
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.CreateVocabWordRequest true "Word"
// @Success 201 {object} models.VocabWord
// @Failure 400 {object} map[string]string "Invalid request body or empty word"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocab [post]
func (h *VocabHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.CreateVocabWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	word, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		h.RespondServiceError(w, r, err, "create word")
		return
	}

	h.RespondJSON(w, http.StatusCreated, word)
}

// DeleteWord handles DELETE /api/v1/vocab/{id}
// @Summary Delete a word
// @Tags vocab
// @Security ApiKeyAuth
// @Param id path int true "Word ID"
// @Success 204 "Deleted"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 404 {object} map[string]string "Word not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocab/{id} [delete]
func (h *VocabHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	wordID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, wordID); err != nil {
		h.RespondServiceError(w, r, err, "delete word")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ImportWords handles POST /api/v1/vocab/import
// @Summary Import words from Excel
// @Description Upload an .xlsx file with English words in column A and Hebrew words in column B. Row 1 is treated as a header.
// @Tags vocab
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Workbook (.xlsx)"
// @Success 200 {object} models.ImportResult
// @Failure 400 {object} map[string]string "Missing or invalid file"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 413 {object} map[string]string "File larger than 5 MB"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocab/import [post]
func (h *VocabHandler) ImportWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	if r.ContentLength > maxImportSize {
		h.RespondError(w, http.StatusRequestEntityTooLarge, "file is too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxImportSize)

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.RespondError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		h.RespondError(w, http.StatusBadRequest, "file must be an .xlsx workbook")
		return
	}

	result, err := h.service.Import(r.Context(), userID, file)
	if err != nil {
		h.RespondServiceError(w, r, err, "import words")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}
