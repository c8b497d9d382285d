package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"writer-server/internal/middleware"
	"writer-server/internal/models"
	"writer-server/internal/service"
)

// ProfileHandler обрабатывает CRUD творческих профилей.
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *zap.Logger
}

func NewProfileHandler(profiles *service.ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger.Named("ProfileHandler"),
	}
}

func (h *ProfileHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
	group.POST("/:id/activate", h.activate)
}

type profileRequest struct {
	Name           string `json:"name" binding:"required"`
	Model          string `json:"model" binding:"required"`
	Temperature    string `json:"temperature"`
	MaxTokens      int    `json:"maxTokens"`
	NarrativeStyle string `json:"narrativeStyle"`
}

func (h *ProfileHandler) create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	profile := &models.CreativeProfile{
		UserID:         userID,
		Name:           req.Name,
		Model:          req.Model,
		Temperature:    req.Temperature,
		MaxTokens:      req.MaxTokens,
		NarrativeStyle: req.NarrativeStyle,
	}
	if profile.Temperature == "" {
		profile.Temperature = models.DefaultTemperature
	}
	if profile.MaxTokens == 0 {
		profile.MaxTokens = models.DefaultMaxTokens
	}

	if err := h.profiles.Create(c.Request.Context(), profile); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

func (h *ProfileHandler) list(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	profiles, err := h.profiles.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *ProfileHandler) get(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	profile, err := h.profiles.Get(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) update(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	profile := &models.CreativeProfile{
		ID:             id,
		UserID:         userID,
		Name:           req.Name,
		Model:          req.Model,
		Temperature:    req.Temperature,
		MaxTokens:      req.MaxTokens,
		NarrativeStyle: req.NarrativeStyle,
	}
	if err := h.profiles.Update(c.Request.Context(), profile); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) delete(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.profiles.Delete(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Активировать профиль
// @Description Делает профиль активным, атомарно деактивируя остальные
// @Tags profiles
// @Produce json
// @Param id path string true "ID профиля"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.ErrorResponse
// @Router /profiles/{id}/activate [post]
func (h *ProfileHandler) activate(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.profiles.SetActive(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": id.String()})
}

// pathID достает аутентифицированного пользователя и :id из пути.
// При ошибке ответ уже записан.
func pathID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid id"})
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}
