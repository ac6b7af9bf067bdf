package services

import (
	"context"
	"time"

	"github.com/amiramtracker/backend/internal/models"
)

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	user      *models.User
	err       error
	createErr error
	created   *models.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.created = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

// mockUserTokenRepository is a mock implementation of UserTokenRepository
type mockUserTokenRepository struct {
	token          *models.UserToken
	err            error
	getErr         error
	updateTokenErr error
	deleted        []string
	expiryTime     time.Time
	expiredCount   int
}

func (m *mockUserTokenRepository) Create(ctx context.Context, userToken *models.UserToken) error {
	return m.err
}

func (m *mockUserTokenRepository) GetByToken(ctx context.Context, token string) (*models.UserToken, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.token, nil
}

func (m *mockUserTokenRepository) UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error {
	return m.updateTokenErr
}

func (m *mockUserTokenRepository) DeleteByToken(ctx context.Context, token string) error {
	m.deleted = append(m.deleted, token)
	return m.err
}

func (m *mockUserTokenRepository) DeleteExpiredTokens(ctx context.Context, expiryTime time.Time) (int, error) {
	m.expiryTime = expiryTime
	return m.expiredCount, m.err
}

// mockDeckDropper records dropped decks
type mockDeckDropper struct {
	dropped []int
}

func (m *mockDeckDropper) Drop(userID int) {
	m.dropped = append(m.dropped, userID)
}

// mockScoreRepository is a mock implementation of ScoreRepository
type mockScoreRepository struct {
	scores      []models.Score
	err         error
	createCalls int
	deleteCalls int
	lastCreated *models.Score
}

func (m *mockScoreRepository) ListByUser(ctx context.Context, userID int) ([]models.Score, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.scores, nil
}

func (m *mockScoreRepository) Create(ctx context.Context, score *models.Score) (*models.Score, error) {
	m.createCalls++
	if m.err != nil {
		return nil, m.err
	}
	created := *score
	created.ID = 100
	m.lastCreated = &created
	return &created, nil
}

func (m *mockScoreRepository) Delete(ctx context.Context, id, userID int) error {
	m.deleteCalls++
	return m.err
}

// mockVocabRepository is a mock implementation of VocabRepository
type mockVocabRepository struct {
	words       []models.VocabWord
	err         error
	createCalls int
	deleteCalls int
	manyWords   []models.VocabWord
}

func (m *mockVocabRepository) ListByUser(ctx context.Context, userID int) ([]models.VocabWord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

func (m *mockVocabRepository) Create(ctx context.Context, word *models.VocabWord) (*models.VocabWord, error) {
	m.createCalls++
	if m.err != nil {
		return nil, m.err
	}
	created := *word
	created.ID = len(m.words) + 1
	m.words = append([]models.VocabWord{created}, m.words...)
	return &created, nil
}

func (m *mockVocabRepository) CreateMany(ctx context.Context, userID int, words []models.VocabWord) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.manyWords = words
	return len(words), nil
}

func (m *mockVocabRepository) Delete(ctx context.Context, id, userID int) error {
	m.deleteCalls++
	return m.err
}

// mockDeckRefresher records refreshed decks
type mockDeckRefresher struct {
	err       error
	refreshed []int
}

func (m *mockDeckRefresher) Refresh(ctx context.Context, userID int) error {
	m.refreshed = append(m.refreshed, userID)
	return m.err
}
