package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"writer-server/internal/middleware"
	"writer-server/internal/models"
)

const testJWTSecret = "unit-test-jwt-secret"

func signToken(t *testing.T, secret string, subject string, expiresAt time.Time) string {
	claims := middleware.Claims{
		Username: "tester",
		Email:    "tester@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// staticUserResolver отдает фиксированного пользователя без похода в БД.
type staticUserResolver struct {
	user *models.User
}

func (r *staticUserResolver) EnsureUser(ctx context.Context, externalID, username, email string) (*models.User, error) {
	return r.user, nil
}

func setupRouter(t *testing.T, resolver middleware.UserResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	verifier, err := middleware.NewJWTVerifier(testJWTSecret)
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.AuthMiddleware(verifier, resolver, zap.NewNop()))
	router.GET("/protected", func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{ID: uuid.New(), Username: "tester"}
	router := setupRouter(t, &staticUserResolver{user: user})

	t.Run("valid token passes", func(t *testing.T) {
		token := signToken(t, testJWTSecret, "ext-123", time.Now().Add(time.Hour))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), user.ID.String())
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token rejected with message", func(t *testing.T) {
		token := signToken(t, testJWTSecret, "ext-123", time.Now().Add(-time.Hour))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "token expired")
	})

	t.Run("wrong signature rejected", func(t *testing.T) {
		token := signToken(t, "some-other-secret", "ext-123", time.Now().Add(time.Hour))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token without subject rejected", func(t *testing.T) {
		token := signToken(t, testJWTSecret, "", time.Now().Add(time.Hour))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestJWTVerifier_VerifyToken(t *testing.T) {
	verifier, err := middleware.NewJWTVerifier(testJWTSecret)
	require.NoError(t, err)

	t.Run("roundtrip claims", func(t *testing.T) {
		token := signToken(t, testJWTSecret, "ext-42", time.Now().Add(time.Hour))
		claims, err := verifier.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, "ext-42", claims.Subject)
		assert.Equal(t, "tester", claims.Username)
	})

	t.Run("garbage maps to malformed", func(t *testing.T) {
		_, err := verifier.VerifyToken("garbage")
		assert.ErrorIs(t, err, models.ErrTokenMalformed)
	})

	t.Run("expired maps to sentinel", func(t *testing.T) {
		token := signToken(t, testJWTSecret, "ext-42", time.Now().Add(-time.Minute))
		_, err := verifier.VerifyToken(token)
		assert.ErrorIs(t, err, models.ErrTokenExpired)
	})

	t.Run("empty secret is a config error", func(t *testing.T) {
		_, err := middleware.NewJWTVerifier("")
		assert.Error(t, err)
	})
}
