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

// LibraryHandler обслуживает библиотеку пользователя: проекты, персонажи, сценарии.
type LibraryHandler struct {
	library *service.LibraryService
	logger  *zap.Logger
}

func NewLibraryHandler(library *service.LibraryService, logger *zap.Logger) *LibraryHandler {
	return &LibraryHandler{
		library: library,
		logger:  logger.Named("LibraryHandler"),
	}
}

func (h *LibraryHandler) RegisterRoutes(api *gin.RouterGroup) {
	projects := api.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PUT("/:id", h.updateProject)
		projects.DELETE("/:id", h.deleteProject)
	}

	characters := api.Group("/characters")
	{
		characters.POST("", h.createCharacter)
		characters.GET("", h.listCharacters)
		characters.GET("/:id", h.getCharacter)
		characters.PUT("/:id", h.updateCharacter)
		characters.DELETE("/:id", h.deleteCharacter)
	}

	scripts := api.Group("/scripts")
	{
		scripts.POST("", h.createScript)
		scripts.GET("", h.listScripts)
		scripts.GET("/:id", h.getScript)
		scripts.PUT("/:id", h.updateScript)
		scripts.DELETE("/:id", h.deleteScript)
	}
}

// --- Projects ---

type projectRequest struct {
	Title   string `json:"title" binding:"required"`
	Premise string `json:"premise"`
	Tone    string `json:"tone"`
}

func (h *LibraryHandler) createProject(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	project := &models.Project{
		UserID:  userID,
		Title:   req.Title,
		Premise: req.Premise,
		Tone:    req.Tone,
	}
	if err := h.library.CreateProject(c.Request.Context(), project); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (h *LibraryHandler) listProjects(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	projects, err := h.library.ListProjects(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *LibraryHandler) getProject(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	project, err := h.library.GetProject(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *LibraryHandler) updateProject(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	project := &models.Project{
		ID:      id,
		UserID:  userID,
		Title:   req.Title,
		Premise: req.Premise,
		Tone:    req.Tone,
	}
	if err := h.library.UpdateProject(c.Request.Context(), project); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *LibraryHandler) deleteProject(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.library.DeleteProject(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Characters ---

type characterRequest struct {
	ProjectID   *uuid.UUID `json:"projectId"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Personality string     `json:"personality"`
	Background  string     `json:"background"`
}

func (h *LibraryHandler) createCharacter(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req characterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	character := &models.Character{
		UserID:      userID,
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Personality: req.Personality,
		Background:  req.Background,
	}
	if err := h.library.CreateCharacter(c.Request.Context(), character); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, character)
}

// listCharacters поддерживает фильтр ?projectId= для выборки персонажей проекта.
func (h *LibraryHandler) listCharacters(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	if raw := c.Query("projectId"); raw != "" {
		projectID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid projectId"})
			return
		}
		characters, err := h.library.ListCharactersByProject(c.Request.Context(), userID, projectID)
		if err != nil {
			handleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, characters)
		return
	}

	characters, err := h.library.ListCharacters(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, characters)
}

func (h *LibraryHandler) getCharacter(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	character, err := h.library.GetCharacter(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *LibraryHandler) updateCharacter(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}

	var req characterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	character := &models.Character{
		ID:          id,
		UserID:      userID,
		ProjectID:   req.ProjectID,
		Name:        req.Name,
		Description: req.Description,
		Personality: req.Personality,
		Background:  req.Background,
	}
	if err := h.library.UpdateCharacter(c.Request.Context(), character); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, character)
}

func (h *LibraryHandler) deleteCharacter(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.library.DeleteCharacter(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Scripts ---

type scriptRequest struct {
	ProjectID *uuid.UUID `json:"projectId"`
	Title     string     `json:"title" binding:"required"`
	Type      string     `json:"type"`
	Content   string     `json:"content"`
}

func (h *LibraryHandler) createScript(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req scriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	script := &models.Script{
		UserID:    userID,
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Type:      req.Type,
		Content:   req.Content,
	}
	if err := h.library.CreateScript(c.Request.Context(), script); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, script)
}

func (h *LibraryHandler) listScripts(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return
	}

	scripts, err := h.library.ListScripts(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, scripts)
}

func (h *LibraryHandler) getScript(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	script, err := h.library.GetScript(c.Request.Context(), userID, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, script)
}

func (h *LibraryHandler) updateScript(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}

	var req scriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	script := &models.Script{
		ID:        id,
		UserID:    userID,
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Type:      req.Type,
		Content:   req.Content,
	}
	if err := h.library.UpdateScript(c.Request.Context(), script); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, script)
}

func (h *LibraryHandler) deleteScript(c *gin.Context) {
	userID, id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.library.DeleteScript(c.Request.Context(), userID, id); err != nil {
		handleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
