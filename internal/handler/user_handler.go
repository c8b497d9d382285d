package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"writer-server/internal/middleware"
	"writer-server/internal/models"
	"writer-server/internal/service"
)

// UserHandler отдает профиль пользователя и управляет ключами провайдеров.
// Значения ключей никогда не возвращаются, только флаги наличия.
type UserHandler struct {
	users  *service.UserService
	logger *zap.Logger
}

func NewUserHandler(users *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger.Named("UserHandler"),
	}
}

func (h *UserHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/me", h.me)
	group.GET("/me/keys", h.keyStatus)
	group.PUT("/me/keys", h.rotateKeys)
}

// @Summary Текущий пользователь
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"keyStatus": user.KeyStatus(),
	})
}

func (h *UserHandler) keyStatus(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, user.KeyStatus())
}

// @Summary Обновить ключи провайдеров
// @Description Отсутствующее поле не меняет ключ, пустая строка удаляет его
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} models.ProviderKeyStatus
// @Failure 400 {object} models.ErrorResponse
// @Router /users/me/keys [put]
func (h *UserHandler) rotateKeys(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req service.ProviderKeyUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	if err := h.users.RotateKeys(c.Request.Context(), user.ID, req); err != nil {
		handleServiceError(c, err)
		return
	}

	// Перечитываем пользователя, чтобы вернуть актуальные флаги.
	updated, err := h.users.Get(c.Request.Context(), user.ID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated.KeyStatus())
}
