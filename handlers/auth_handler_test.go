package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"comic-news/config"
	"comic-news/helper"
	"comic-news/middleware"
	"comic-news/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig(t *testing.T) *config.Config {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	return &config.Config{
		JWTSecret:         []byte("test-secret"),
		JWTExpiration:     time.Hour,
		AdminPasswordHash: string(hash),
	}
}

func setupAuthRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(services.NewAuthService(cfg), helper.NewHTTPHelper())

	router := gin.New()
	router.POST("/api/auth/login", h.Login)
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protected.POST("/refresh", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func postJSON(router *gin.Engine, path string, payload interface{}, token string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginIssuesTokenAcceptedByMiddleware(t *testing.T) {
	router := setupAuthRouter(authTestConfig(t))

	w := postJSON(router, "/api/auth/login", gin.H{"password": "hunter2"}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	w = postJSON(router, "/api/refresh", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := setupAuthRouter(authTestConfig(t))
	w := postJSON(router, "/api/auth/login", gin.H{"password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginValidatesBody(t *testing.T) {
	router := setupAuthRouter(authTestConfig(t))
	w := postJSON(router, "/api/auth/login", gin.H{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshRequiresToken(t *testing.T) {
	router := setupAuthRouter(authTestConfig(t))

	w := postJSON(router, "/api/refresh", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(router, "/api/refresh", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
