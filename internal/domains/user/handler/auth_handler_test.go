package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kingsley6145/gamebridge-admin/internal/config"
	"github.com/Kingsley6145/gamebridge-admin/internal/shared/middleware"
	"github.com/Kingsley6145/gamebridge-admin/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testPassword = "correct horse battery staple"

func authRouter(t *testing.T) (*gin.Engine, *jwt.Manager) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	manager := jwt.NewManager("test-secret", 60, 72)
	h := NewAuthHandler(config.AdminConfig{
		Email:        "admin@gamebridge.local",
		PasswordHash: string(hash),
	}, manager)

	router := gin.New()
	router.POST("/auth/login", h.Login)
	router.POST("/auth/refresh", h.Refresh)
	router.GET("/auth/me", middleware.AuthMiddleware(manager), h.Me)
	return router, manager
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loginTokens(t *testing.T, router *gin.Engine) (access, refresh string) {
	t.Helper()
	w := postJSON(t, router, "/auth/login", LoginRequest{
		Email:    "admin@gamebridge.local",
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data struct {
			AccessToken  string `json:"accessToken"`
			RefreshToken string `json:"refreshToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data.AccessToken, envelope.Data.RefreshToken
}

func TestLoginIssuesTokenPair(t *testing.T) {
	router, manager := authRouter(t)

	access, refresh := loginTokens(t, router)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	claims, err := manager.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "admin@gamebridge.local", claims.Email)
}

func TestLoginWrongPassword(t *testing.T) {
	router, _ := authRouter(t)

	w := postJSON(t, router, "/auth/login", LoginRequest{
		Email:    "admin@gamebridge.local",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginWrongEmail(t *testing.T) {
	router, _ := authRouter(t)

	w := postJSON(t, router, "/auth/login", LoginRequest{
		Email:    "someone@else.example",
		Password: testPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRequestValidateIsOffline(t *testing.T) {
	// Admin accounts live on private domains that never resolve in
	// public DNS; the email rule must stay a pure syntax check.
	req := LoginRequest{Email: "admin@gamebridge.local", Password: testPassword}
	assert.NoError(t, req.Validate())

	assert.Error(t, LoginRequest{Email: "not-an-email", Password: testPassword}.Validate())
}

func TestLoginValidatesPayload(t *testing.T) {
	router, _ := authRouter(t)

	w := postJSON(t, router, "/auth/login", LoginRequest{Email: "not-an-email", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshIssuesNewPair(t *testing.T) {
	router, manager := authRouter(t)
	_, refresh := loginTokens(t, router)

	w := postJSON(t, router, "/auth/refresh", RefreshRequest{RefreshToken: refresh})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	_, err := manager.ValidateAccessToken(envelope.Data.AccessToken)
	assert.NoError(t, err)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	router, _ := authRouter(t)
	access, _ := loginTokens(t, router)

	w := postJSON(t, router, "/auth/refresh", RefreshRequest{RefreshToken: access})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresBearerToken(t *testing.T) {
	router, _ := authRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeEchoesIdentity(t *testing.T) {
	router, _ := authRouter(t)
	access, _ := loginTokens(t, router)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@gamebridge.local")
}
