package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"writer-server/internal/llm"
	"writer-server/internal/models"
)

// handleServiceError транслирует доменные ошибки в HTTP-ответы.
// Все ошибки пайплайна уходят наружу единым JSON-форматом {"error": "..."}.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrProfileNotFound),
		errors.Is(err, models.ErrPromptNotFound),
		errors.Is(err, models.ErrProjectNotFound),
		errors.Is(err, models.ErrCharacterNotFound),
		errors.Is(err, models.ErrScriptNotFound),
		errors.Is(err, models.ErrExecutionNotFound),
		errors.Is(err, models.ErrUserNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})

	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrBadRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})

	case errors.Is(err, models.ErrProviderKeyMissing), errors.Is(err, models.ErrEncryptionKeyAbsent):
		// Конфигурационная ошибка пользователя: сообщение отдаем дословно
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})

	case errors.Is(err, models.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})

	case errors.Is(err, models.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: err.Error()})

	case errors.Is(err, llm.ErrGenerationFailed):
		// Ошибки провайдера пробрасываются без ретраев на этом слое
		c.AbortWithStatusJSON(http.StatusBadGateway, models.ErrorResponse{Error: err.Error()})

	default:
		zap.L().Error("Unhandled service error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
}
