package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vipreviews/internal/app/reviews/util"
)

func setupAuthRouter(jwtManager *util.JWTManager, requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	middleware := NewAuthMiddleware(jwtManager)
	router.GET("/protected", middleware.Authenticate(requiredRole), func(c *gin.Context) {
		role, _ := c.Get("role")
		c.JSON(http.StatusOK, gin.H{"role": role})
	})
	return router
}

func TestAuthenticate_ValidToken(t *testing.T) {
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	router := setupAuthRouter(jwtManager, util.RoleAdmin)

	token, err := jwtManager.GenerateToken(uuid.New(), "admin@gmail.com", util.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	router := setupAuthRouter(jwtManager, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	router := setupAuthRouter(jwtManager, "")

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	other := util.NewJWTManager("other-secret", time.Hour)
	router := setupAuthRouter(jwtManager, "")

	token, err := other.GenerateToken(uuid.New(), "admin@gmail.com", util.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	jwtManager := util.NewJWTManager("test-secret", -time.Minute)
	router := setupAuthRouter(jwtManager, "")

	token, err := jwtManager.GenerateToken(uuid.New(), "admin@gmail.com", util.RoleAdmin)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// Клиентский токен не проходит на админский маршрут
func TestAuthenticate_RoleMismatch(t *testing.T) {
	jwtManager := util.NewJWTManager("test-secret", time.Hour)
	router := setupAuthRouter(jwtManager, util.RoleAdmin)

	token, err := jwtManager.GenerateToken(uuid.New(), "client@example.com", util.RoleClient)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
