package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amiramtracker/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAuthRouter(svc *mockAuthService) *chi.Mux {
	r := chi.NewRouter()
	NewAuthHandler(svc, time.Hour, 168*time.Hour, zap.NewNop()).RegisterRoutes(r, fakeAuth)
	return r
}

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	out := make(map[string]*http.Cookie)
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c
	}
	return out
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockAuthService
		expectedStatus int
		expectCookies  bool
	}{
		{
			name:           "success",
			body:           `{"email":"amiram@example.com","password":"secret1"}`,
			svc:            &mockAuthService{},
			expectedStatus: http.StatusCreated,
			expectCookies:  true,
		},
		{
			name:           "invalid body",
			body:           `{`,
			svc:            &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "validation error",
			body:           `{"email":"bad","password":"1"}`,
			svc:            &mockAuthService{err: models.ErrValidation},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "email taken",
			body:           `{"email":"amiram@example.com","password":"secret1"}`,
			svc:            &mockAuthService{err: models.ErrAlreadyExists},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))

			setupAuthRouter(tt.svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			cookies := cookiesByName(rec)
			if tt.expectCookies {
				require.Contains(t, cookies, "access_token")
				require.Contains(t, cookies, "refresh_token")
				assert.Equal(t, "access", cookies["access_token"].Value)
				assert.Equal(t, 3600, cookies["access_token"].MaxAge)
				assert.Equal(t, 604800, cookies["refresh_token"].MaxAge)
				assert.True(t, cookies["access_token"].HttpOnly)
			} else {
				assert.Empty(t, cookies)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		svc            *mockAuthService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			svc:            &mockAuthService{},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"login successful"}`,
		},
		{
			name:           "bad credentials",
			svc:            &mockAuthService{err: models.ErrInvalidCredentials},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid credentials"}`,
		},
		{
			name:           "internal error",
			svc:            &mockAuthService{err: errors.New("database error")},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to login user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"amiram@example.com","password":"secret1"}`))

			setupAuthRouter(tt.svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	tests := []struct {
		name           string
		setupRequest   func() *http.Request
		svc            *mockAuthService
		expectedStatus int
		expectedToken  string
	}{
		{
			name: "token from body",
			setupRequest: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refresh_token":"body-token"}`))
			},
			svc:            &mockAuthService{},
			expectedStatus: http.StatusOK,
			expectedToken:  "body-token",
		},
		{
			name: "token from cookie",
			setupRequest: func() *http.Request {
				req := httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
				req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-token"})
				return req
			},
			svc:            &mockAuthService{},
			expectedStatus: http.StatusOK,
			expectedToken:  "cookie-token",
		},
		{
			name: "missing token",
			setupRequest: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/auth/refresh", nil)
			},
			svc:            &mockAuthService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "revoked token",
			setupRequest: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/auth/refresh", strings.NewReader(`{"refresh_token":"old"}`))
			},
			svc:            &mockAuthService{err: models.ErrUnauthorized},
			expectedStatus: http.StatusUnauthorized,
			expectedToken:  "old",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			setupAuthRouter(tt.svc).ServeHTTP(rec, tt.setupRequest())

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedToken, tt.svc.refreshToken)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, "new-refresh", cookiesByName(rec)["refresh_token"].Value)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &mockAuthService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "cookie-token"})

	setupAuthRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cookie-token", svc.loggedOut)
	cookies := cookiesByName(rec)
	require.Contains(t, cookies, "access_token")
	require.Contains(t, cookies, "refresh_token")
	assert.Empty(t, cookies["access_token"].Value)
	assert.Negative(t, cookies["refresh_token"].MaxAge)
}

func TestAuthHandler_Session(t *testing.T) {
	svc := &mockAuthService{session: &models.Session{UserID: testUserID, Email: "amiram@example.com"}}
	rec := httptest.NewRecorder()

	setupAuthRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/session", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"userId":7,"email":"amiram@example.com"}`, rec.Body.String())
}
