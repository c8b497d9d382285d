package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"writer-server/internal/models"
)

// Ключ, под которым аутентифицированный пользователь лежит в gin.Context.
const ContextUserKey = "authUser"

// Claims - полезная нагрузка токена внешнего провайдера аутентификации.
type Claims struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserResolver превращает внешний auth id в запись пользователя
// (upsert при первом запросе).
type UserResolver interface {
	EnsureUser(ctx context.Context, externalID, username, email string) (*models.User, error)
}

// JWTVerifier проверяет подпись и срок действия bearer-токенов.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is empty")
	}
	return &JWTVerifier{secret: []byte(secret)}, nil
}

// VerifyToken разбирает и валидирует токен, возвращая claims.
func (v *JWTVerifier) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, models.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, models.ErrTokenMalformed
		default:
			return nil, models.ErrTokenInvalid
		}
	}
	if !token.Valid || claims.Subject == "" {
		return nil, models.ErrTokenInvalid
	}
	return claims, nil
}

// AuthMiddleware проверяет bearer-токен и кладет пользователя в контекст.
// Пользователь создается при первом аутентифицированном запросе.
func AuthMiddleware(verifier *JWTVerifier, users UserResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized: missing token"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized: malformed token header"})
			return
		}

		claims, err := verifier.VerifyToken(parts[1])
		if err != nil {
			msg := "Unauthorized: invalid token"
			if errors.Is(err, models.ErrTokenExpired) {
				msg = "Unauthorized: token expired"
			}
			logger.Warn("Token verification failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: msg})
			return
		}

		user, err := users.EnsureUser(c.Request.Context(), claims.Subject, claims.Username, claims.Email)
		if err != nil {
			logger.Error("Failed to resolve authenticated user", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser достает аутентифицированного пользователя из контекста запроса.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}

// CurrentUserID - шорткат для id аутентифицированного пользователя.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}
