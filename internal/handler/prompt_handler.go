package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"writer-server/internal/middleware"
	"writer-server/internal/models"
	"writer-server/internal/service"
)

// PromptHandler обрабатывает CRUD шаблонов промптов.
type PromptHandler struct {
	prompts *service.PromptService
	logger  *zap.Logger
}

func NewPromptHandler(prompts *service.PromptService, logger *zap.Logger) *PromptHandler {
	return &PromptHandler{
		prompts: prompts,
		logger:  logger.Named("PromptHandler"),
	}
}

func (h *PromptHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.create)
	group.GET("", h.list)
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.delete)
}

type promptRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Type     string `json:"type" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Active   *bool  `json:"active"`
}

// @Summary Создать шаблон промпта
// @Description Категория GLOBAL внедряет активный промпт во все системные промпты пользователя
// @Tags prompts
// @Accept json
// @Produce json
// @Success 201 {object} models.Prompt
// @Failure 400 {object} models.ErrorResponse
// @Router /prompts [post]
func (h *PromptHandler) create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	prompt := &models.Prompt{
		UserID:   userID,
		Name:     req.Name,
		Category: req.Category,
		Type:     models.PromptRole(req.Type),
		Content:  req.Content,
		Active:   active,
	}
	if err := h.prompts.Create(c.Request.Context(), prompt); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prompt)
}

func (h *PromptHandler) list(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	prompts, err := h.prompts.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

func (h *PromptHandler) get(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	prompt, err := h.prompts.Get(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

func (h *PromptHandler) update(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}

	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	prompt := &models.Prompt{
		ID:       id,
		UserID:   userID,
		Name:     req.Name,
		Category: req.Category,
		Type:     models.PromptRole(req.Type),
		Content:  req.Content,
		Active:   active,
	}
	if err := h.prompts.Update(c.Request.Context(), prompt); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

func (h *PromptHandler) delete(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.prompts.Delete(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
