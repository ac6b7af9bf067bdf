package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amiramtracker/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupVocabRouter(svc *mockVocabService) *chi.Mux {
	r := chi.NewRouter()
	NewVocabHandler(svc, zap.NewNop()).RegisterRoutes(r, fakeAuth)
	return r
}

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if field != "" {
		part, err := writer.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/vocab/import", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestVocabHandler_ListWords(t *testing.T) {
	svc := &mockVocabService{words: []models.VocabWord{{ID: 2, EnglishWord: "book", HebrewWord: "ספר"}}}
	rec := httptest.NewRecorder()

	setupVocabRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vocab", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var words []models.VocabWord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &words))
	assert.Equal(t, svc.words, words)
}

func TestVocabHandler_CreateWord(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockVocabService
		expectedStatus int
	}{
		{
			name:           "success",
			body:           `{"englishWord":"dog","hebrewWord":"כלב"}`,
			svc:            &mockVocabService{created: &models.VocabWord{ID: 1, EnglishWord: "dog", HebrewWord: "כלב"}},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "empty hebrew word",
			body:           `{"englishWord":"dog","hebrewWord":""}`,
			svc:            &mockVocabService{err: models.ErrValidation},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid body",
			body:           `not json`,
			svc:            &mockVocabService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			body:           `{"englishWord":"dog","hebrewWord":"כלב"}`,
			svc:            &mockVocabService{err: errors.New("database error")},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			setupVocabRouter(tt.svc).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vocab", strings.NewReader(tt.body)))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestVocabHandler_DeleteWord(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		svc            *mockVocabService
		expectedStatus int
	}{
		{name: "success", path: "/vocab/4", svc: &mockVocabService{}, expectedStatus: http.StatusNoContent},
		{name: "zero id", path: "/vocab/0", svc: &mockVocabService{}, expectedStatus: http.StatusBadRequest},
		{name: "not found", path: "/vocab/4", svc: &mockVocabService{err: models.ErrNotFound}, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			setupVocabRouter(tt.svc).ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestVocabHandler_ImportWords(t *testing.T) {
	result := &models.ImportResult{Processed: 3, Created: 2, Skipped: 1, Errors: []string{"Row 3: Hebrew word is empty"}}

	tests := []struct {
		name           string
		field          string
		filename       string
		svc            *mockVocabService
		expectedStatus int
	}{
		{name: "success", field: "file", filename: "words.xlsx", svc: &mockVocabService{imported: result}, expectedStatus: http.StatusOK},
		{name: "missing file", field: "", svc: &mockVocabService{}, expectedStatus: http.StatusBadRequest},
		{name: "wrong extension", field: "file", filename: "words.csv", svc: &mockVocabService{}, expectedStatus: http.StatusBadRequest},
		{name: "unreadable workbook", field: "file", filename: "words.xlsx", svc: &mockVocabService{err: models.ErrValidation}, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			setupVocabRouter(tt.svc).ServeHTTP(rec, multipartUpload(t, tt.field, tt.filename, []byte("workbook-bytes")))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, []byte("workbook-bytes"), tt.svc.uploaded)
				var got models.ImportResult
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
				assert.Equal(t, *result, got)
			}
		})
	}
}

func TestVocabHandler_ImportWordsTooLarge(t *testing.T) {
	t.Run("declared length over limit", func(t *testing.T) {
		svc := &mockVocabService{}
		rec := httptest.NewRecorder()

		setupVocabRouter(svc).ServeHTTP(rec, multipartUpload(t, "file", "words.xlsx", bytes.Repeat([]byte("x"), maxImportSize+1)))

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.JSONEq(t, `{"error":"file is too large"}`, rec.Body.String())
		assert.Nil(t, svc.uploaded)
	})

	t.Run("streamed body over limit", func(t *testing.T) {
		svc := &mockVocabService{}
		rec := httptest.NewRecorder()
		req := multipartUpload(t, "file", "words.xlsx", bytes.Repeat([]byte("x"), maxImportSize+1))
		req.ContentLength = -1

		setupVocabRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Nil(t, svc.uploaded)
	})
}
