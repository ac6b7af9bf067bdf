package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/amiramtracker/backend/internal/middleware"
	"github.com/amiramtracker/backend/internal/models"
	"github.com/amiramtracker/backend/internal/services"
	"github.com/amiramtracker/backend/internal/stats"
)

const testUserID = 7

// fakeAuth injects a fixed session, standing in for the JWT middleware
func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := middleware.WithSession(r.Context(), models.Session{UserID: testUserID, Email: "amiram@example.com"})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// mockAuthService is a mock implementation of AuthService
type mockAuthService struct {
	err          error
	session      *models.Session
	refreshToken string
	loggedOut    string
}

func (m *mockAuthService) Register(ctx context.Context, req *models.CredentialsRequest) (string, string, error) {
	if m.err != nil {
		return "", "", m.err
	}
	return "access", "refresh", nil
}

func (m *mockAuthService) Login(ctx context.Context, req *models.CredentialsRequest) (string, string, error) {
	if m.err != nil {
		return "", "", m.err
	}
	return "access", "refresh", nil
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	m.refreshToken = refreshToken
	if m.err != nil {
		return "", "", m.err
	}
	return "new-access", "new-refresh", nil
}

func (m *mockAuthService) Logout(ctx context.Context, refreshToken string) error {
	m.loggedOut = refreshToken
	return m.err
}

func (m *mockAuthService) Session(ctx context.Context, userID int) (*models.Session, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

// mockScoreService is a mock implementation of ScoreService
type mockScoreService struct {
	scores     []models.Score
	created    *models.Score
	statistics *services.StatisticsResponse
	err        error
	deletedID  int
}

func (m *mockScoreService) List(ctx context.Context, userID int) ([]models.Score, error) {
	return m.scores, m.err
}

func (m *mockScoreService) Create(ctx context.Context, userID int, req *models.CreateScoreRequest) (*models.Score, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.created, nil
}

func (m *mockScoreService) Delete(ctx context.Context, userID, scoreID int) error {
	m.deletedID = scoreID
	return m.err
}

func (m *mockScoreService) Statistics(ctx context.Context, userID int) (*services.StatisticsResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.statistics, nil
}

func (m *mockScoreService) Levels() []stats.LevelBand {
	return stats.Levels()
}

// mockVocabService is a mock implementation of VocabService
type mockVocabService struct {
	words    []models.VocabWord
	created  *models.VocabWord
	imported *models.ImportResult
	err      error
	uploaded []byte
}

func (m *mockVocabService) List(ctx context.Context, userID int) ([]models.VocabWord, error) {
	return m.words, m.err
}

func (m *mockVocabService) Create(ctx context.Context, userID int, req *models.CreateVocabWordRequest) (*models.VocabWord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.created, nil
}

func (m *mockVocabService) Delete(ctx context.Context, userID, wordID int) error {
	return m.err
}

func (m *mockVocabService) Import(ctx context.Context, userID int, workbook io.Reader) (*models.ImportResult, error) {
	data, err := io.ReadAll(workbook)
	if err != nil {
		return nil, err
	}
	m.uploaded = data
	if m.err != nil {
		return nil, m.err
	}
	return m.imported, nil
}

// mockFlashcardService is a mock implementation of FlashcardService
type mockFlashcardService struct {
	deck *models.DeckResponse
	flip *models.FlipResponse
	err  error
}

func (m *mockFlashcardService) Current(ctx context.Context, userID int) (*models.DeckResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.deck, nil
}

func (m *mockFlashcardService) Reshuffle(ctx context.Context, userID int) (*models.DeckResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.deck, nil
}

func (m *mockFlashcardService) Flip(ctx context.Context, userID, wordID int) (*models.FlipResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.FlipResponse{WordID: wordID, Revealed: true}, nil
}

// mockPinger is a mock implementation of Pinger
type mockPinger struct {
	err error
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.err
}
