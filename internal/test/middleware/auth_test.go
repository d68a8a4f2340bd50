package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casework-backend/internal/middleware"
	"casework-backend/internal/models"
	"casework-backend/internal/store"
)

// fakeUsers resolves a fixed set of user ids.
type fakeUsers struct {
	users map[int64]*models.User
}

func (f *fakeUsers) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, store.ErrNotFound
}

func newRouter(resolver middleware.CallerResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Auth(resolver))
	router.GET("/test", func(c *gin.Context) {
		caller, ok := middleware.CallerFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no caller"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": caller.ID})
	})
	return router
}

func knownUsers() *fakeUsers {
	return &fakeUsers{users: map[int64]*models.User{
		7: {ID: 7, Email: "alice@example.com"},
	}}
}

func TestHeaderResolver_NoIdentity(t *testing.T) {
	router := newRouter(middleware.NewHeaderResolver(knownUsers()))

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHeaderResolver_UnknownUser(t *testing.T) {
	router := newRouter(middleware.NewHeaderResolver(knownUsers()))

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-User-Id", "99")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHeaderResolver_HeaderIdentity(t *testing.T) {
	router := newRouter(middleware.NewHeaderResolver(knownUsers()))

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-User-Id", "7")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
}

func TestHeaderResolver_QueryFallback(t *testing.T) {
	router := newRouter(middleware.NewHeaderResolver(knownUsers()))

	req, _ := http.NewRequest(http.MethodGet, "/test?currentUserId=7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTokenResolver_ValidToken(t *testing.T) {
	secret := "test-secret-key-for-hs256-signing"
	router := newRouter(middleware.NewTokenResolver(knownUsers(), secret))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7"})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
}

func TestTokenResolver_BadSignature(t *testing.T) {
	router := newRouter(middleware.NewTokenResolver(knownUsers(), "right-secret"))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7"})
	signed, err := token.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenResolver_MissingHeader(t *testing.T) {
	router := newRouter(middleware.NewTokenResolver(knownUsers(), "secret"))

	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
