package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/dto"
	"github.com/posledger/pos_ledger_app/internal/middleware"
)

// restockHandler handles HTTP requests for restocking and templates.
type restockHandler struct {
	restockService portssvc.RestockSvcFacade
}

func newRestockHandler(restockService portssvc.RestockSvcFacade) *restockHandler {
	return &restockHandler{restockService: restockService}
}

func registerRestockRoutes(group *gin.RouterGroup, restockService portssvc.RestockSvcFacade) {
	h := newRestockHandler(restockService)
	group.POST("/restocks", middleware.RequireActor(), h.createRestock)

	templates := group.Group("/restocks/templates")
	templates.POST("", middleware.RequireActor(), h.createTemplate)
	templates.GET("", h.listTemplates)
	templates.GET("/:templateID", h.getTemplate)
}

// createRestock commits one restock as a single batch.
func (h *restockHandler) createRestock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateRestockRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createRestock", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorFromCtx(c.Request.Context())
	logger = logger.With(slog.String("actor_id", actorID))

	restock, err := h.restockService.ProcessRestock(c.Request.Context(), createReq, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to process restock")
		return
	}

	logger.Info("Restock committed", slog.String("batch_id", restock.BatchID))
	c.JSON(http.StatusCreated, restock)
}

func (h *restockHandler) createTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateTemplateRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createTemplate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorFromCtx(c.Request.Context())

	template, err := h.restockService.CreateTemplate(c.Request.Context(), createReq, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create template")
		return
	}

	logger.Info("Template created", slog.String("template_id", template.TemplateID))
	c.JSON(http.StatusCreated, template)
}

func (h *restockHandler) getTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	templateID := c.Param("templateID")

	template, err := h.restockService.GetTemplate(c.Request.Context(), templateID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve template")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *restockHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset := paginationParams(c)
	templates, err := h.restockService.ListTemplates(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list templates")
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": templates})
}
