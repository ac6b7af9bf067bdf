package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amiramtracker/backend/internal/auth"
	"github.com/amiramtracker/backend/internal/models"
	"github.com/amiramtracker/backend/internal/validator"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user; its ID is set on success.
	//
	// If the email is already taken, models.ErrAlreadyExists is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByEmail retrieves a user by email.
	//
	// "email" parameter must already be normalized.
	//
	// If user with such email does not exist, models.ErrNotFound is returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, models.ErrNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
}

// UserTokenRepository is the interface that wraps methods for UserToken table data access
type UserTokenRepository interface {
	// Method Create inserts a new user token into the database.
	//
	// "userToken" parameter is used to create a new user token.
	Create(ctx context.Context, userToken *models.UserToken) error
	// Method GetByToken retrieves a user token by token string.
	//
	// "token" parameter is used to retrieve a user token by token string.
	//
	// If user token with such token does not exist, models.ErrNotFound is returned together with "nil" value.
	GetByToken(ctx context.Context, token string) (*models.UserToken, error)
	// Method UpdateToken replaces a stored token with its rotated successor.
	//
	// "oldToken" parameter identifies the stored token.
	// "newToken" parameter is the replacement.
	// "userID" parameter must match the owner of the stored token.
	UpdateToken(ctx context.Context, oldToken, newToken string, userID int) error
	// Method DeleteByToken deletes a user token by token string.
	//
	// Deleting an unknown token is not an error.
	DeleteByToken(ctx context.Context, token string) error
	// Method DeleteExpiredTokens deletes every token created at or before expiryTime.
	//
	// It returns the number of deleted tokens.
	DeleteExpiredTokens(ctx context.Context, expiryTime time.Time) (int, error)
}

// DeckDropper discards the in-memory flashcard deck of a user
type DeckDropper interface {
	Drop(userID int)
}

// authService implements AuthService
type authService struct {
	userRepo       UserRepository
	userTokenRepo  UserTokenRepository
	tokenGenerator *auth.TokenGenerator
	decks          DeckDropper
	logger         *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo UserRepository,
	userTokenRepo UserTokenRepository,
	tokenGenerator *auth.TokenGenerator,
	decks DeckDropper,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		tokenGenerator: tokenGenerator,
		decks:          decks,
		logger:         logger,
	}
}

// Register creates a new user account and signs it in
func (s *authService) Register(ctx context.Context, req *models.CredentialsRequest) (string, string, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validator.ValidateStruct(req); err != nil {
		return "", "", fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", "", err
	}

	s.logger.Info("user registered", zap.Int("userId", user.ID))
	return s.generateAndSaveTokens(ctx, user)
}

// Login authenticates a user by email and password
func (s *authService) Login(ctx context.Context, req *models.CredentialsRequest) (string, string, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return "", "", fmt.Errorf("%w: email and password are required", models.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return "", "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", "", models.ErrInvalidCredentials
	}

	return s.generateAndSaveTokens(ctx, user)
}

// Refresh validates a refresh token and rotates it
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", "", fmt.Errorf("%w: refresh token required", models.ErrValidation)
	}

	if err := s.tokenGenerator.ValidateRefreshToken(refreshToken); err != nil {
		// Delete token if it exists in database
		if delErr := s.userTokenRepo.DeleteByToken(ctx, refreshToken); delErr != nil {
			s.logger.Warn("failed to delete invalid refresh token", zap.Error(delErr))
		}
		return "", "", fmt.Errorf("%w: invalid or expired refresh token", models.ErrUnauthorized)
	}

	userToken, err := s.userTokenRepo.GetByToken(ctx, refreshToken)
	if errors.Is(err, models.ErrNotFound) {
		return "", "", fmt.Errorf("%w: refresh token revoked", models.ErrUnauthorized)
	}
	if err != nil {
		return "", "", err
	}

	user, err := s.userRepo.GetByID(ctx, userToken.UserID)
	if errors.Is(err, models.ErrNotFound) {
		return "", "", fmt.Errorf("%w: user no longer exists", models.ErrUnauthorized)
	}
	if err != nil {
		return "", "", err
	}

	accessToken, newRefreshToken, err := s.tokenGenerator.GenerateTokens(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.userTokenRepo.UpdateToken(ctx, refreshToken, newRefreshToken, user.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return "", "", fmt.Errorf("%w: refresh token revoked", models.ErrUnauthorized)
		}
		return "", "", err
	}

	return accessToken, newRefreshToken, nil
}

// Logout revokes a refresh token and discards the owner's flashcard deck.
// Unknown tokens are ignored so signing out twice is harmless.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}

	userToken, err := s.userTokenRepo.GetByToken(ctx, refreshToken)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.userTokenRepo.DeleteByToken(ctx, refreshToken); err != nil {
		return err
	}
	s.decks.Drop(userToken.UserID)

	s.logger.Info("user signed out", zap.Int("userId", userToken.UserID))
	return nil
}

// Session returns the identity of an authenticated user
func (s *authService) Session(ctx context.Context, userID int) (*models.Session, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%w: user no longer exists", models.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	return &models.Session{UserID: user.ID, Email: user.Email}, nil
}

// PurgeExpiredTokens deletes refresh tokens older than the refresh token lifetime
func (s *authService) PurgeExpiredTokens(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-s.tokenGenerator.RefreshTokenExpiry())
	return s.userTokenRepo.DeleteExpiredTokens(ctx, cutoff)
}

// generateAndSaveTokens issues a token pair and persists the refresh token
func (s *authService) generateAndSaveTokens(ctx context.Context, user *models.User) (string, string, error) {
	accessToken, refreshToken, err := s.tokenGenerator.GenerateTokens(user.ID, user.Email)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate tokens: %w", err)
	}

	userToken := &models.UserToken{
		UserID: user.ID,
		Token:  refreshToken,
	}
	if err := s.userTokenRepo.Create(ctx, userToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}

	return accessToken, refreshToken, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
