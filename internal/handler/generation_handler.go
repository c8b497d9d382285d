package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"writer-server/internal/interfaces"
	"writer-server/internal/llm"
	"writer-server/internal/middleware"
	"writer-server/internal/models"
	"writer-server/internal/service"
	"writer-server/internal/utils"
)

// GenerationHandler обрабатывает HTTP запросы пайплайна генерации.
type GenerationHandler struct {
	generation *service.GenerationService
	executions interfaces.ExecutionRepository
	pricing    *llm.PricingService
	secretBox  *utils.SecretBox
	logger     *zap.Logger
}

// NewGenerationHandler создает обработчик генерации.
func NewGenerationHandler(
	generation *service.GenerationService,
	executions interfaces.ExecutionRepository,
	pricing *llm.PricingService,
	secretBox *utils.SecretBox,
	logger *zap.Logger,
) *GenerationHandler {
	return &GenerationHandler{
		generation: generation,
		executions: executions,
		pricing:    pricing,
		secretBox:  secretBox,
		logger:     logger.Named("GenerationHandler"),
	}
}

// RegisterRoutes регистрирует маршруты генерации в защищенной группе.
func (h *GenerationHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/generate", h.generate)
	group.GET("/executions", h.listExecutions)
	group.GET("/executions/:id", h.getExecution)
	group.GET("/models", h.listModels)
}

// @Summary Выполнить генерацию
// @Description Собирает контекст, строит промпты и вызывает LLM-провайдера
// @Tags ai
// @Accept json
// @Produce json
// @Param request body models.GenerationRequest true "Параметры генерации"
// @Success 200 {object} models.GenerationResponse
// @Failure 400 {object} models.ErrorResponse "Неверный запрос или не настроен ключ провайдера"
// @Failure 502 {object} models.ErrorResponse "Ошибка провайдера"
// @Router /ai/generate [post]
func (h *GenerationHandler) generate(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	resp, err := h.generation.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Список записей аудита генераций
// @Tags ai
// @Produce json
// @Param limit query int false "Размер страницы (по умолчанию 20)"
// @Param offset query int false "Смещение"
// @Success 200 {array} models.AIExecution
// @Router /ai/executions [get]
func (h *GenerationHandler) listExecutions(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	executions, err := h.executions.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, executions)
}

func (h *GenerationHandler) getExecution(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid execution id"})
		return
	}

	execution, err := h.executions.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, execution)
}

// @Summary Список доступных моделей с ценами
// @Description Листинг для UI выбора модели; кэшируется на 24 часа
// @Tags ai
// @Produce json
// @Success 200 {array} llm.ModelInfo
// @Router /ai/models [get]
func (h *GenerationHandler) listModels(c *gin.Context) {
	// Gemini-часть листинга доступна только при настроенном ключе
	geminiKey := ""
	if user, ok := middleware.CurrentUser(c); ok && user.GeminiKey != nil {
		if plain, err := h.secretBox.Decrypt(*user.GeminiKey); err == nil {
			geminiKey = plain
		}
	}
	modelList, err := h.pricing.ListModels(c.Request.Context(), geminiKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, modelList)
}
