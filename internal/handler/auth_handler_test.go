package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wafflestudio/team2-server/internal/domain"
	"github.com/wafflestudio/team2-server/internal/middleware"
	"github.com/wafflestudio/team2-server/internal/repository"
	"github.com/wafflestudio/team2-server/internal/service"
	"github.com/wafflestudio/team2-server/pkg/jwt"
)

// newAuthRouter wires the auth surface over an in-memory database. The
// other services stay nil; their routes are registered but not exercised.
func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&domain.UserModel{}))

	tokens, err := jwt.NewManager(time.Minute, time.Hour, "test")
	require.NoError(t, err)

	users := service.NewUserService(repository.NewGormUserRepository(db), tokens)
	h := NewHandler(users, nil, nil, nil, nil, nil, nil, nil, middleware.NewAuthMiddleware(tokens))

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerAlice(t *testing.T, r http.Handler) domain.AuthResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":    "alice@example.com",
		"username": "alice",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Data domain.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestLogoutInvalidatesSession(t *testing.T) {
	r := newAuthRouter(t)
	session := registerAlice(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/me", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", session.AccessToken,
		gin.H{"refresh_token": session.RefreshToken})
	require.Equal(t, http.StatusNoContent, w.Code)

	// The revoked pair is rejected for the rest of its lifetime.
	w = doJSON(t, r, http.MethodGet, "/api/v1/users/me", session.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/refresh", "",
		gin.H{"refresh_token": session.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// A fresh login works and is unaffected by the earlier logout.
	w = doJSON(t, r, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "alice@example.com",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data domain.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	w = doJSON(t, r, http.MethodGet, "/api/v1/users/me", envelope.Data.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutWithoutBody(t *testing.T) {
	r := newAuthRouter(t)
	session := registerAlice(t, r)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", session.AccessToken, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/users/me", session.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRequiresAuth(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
