package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/dto"
	"github.com/posledger/pos_ledger_app/internal/middleware"
)

// saleHandler handles HTTP requests for point-of-sale checkout.
type saleHandler struct {
	saleService      portssvc.SaleSvcFacade
	reportingService portssvc.ReportingSvcFacade
}

func newSaleHandler(saleService portssvc.SaleSvcFacade, reportingService portssvc.ReportingSvcFacade) *saleHandler {
	return &saleHandler{saleService: saleService, reportingService: reportingService}
}

func registerSaleRoutes(group *gin.RouterGroup, saleService portssvc.SaleSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := newSaleHandler(saleService, reportingService)
	group.POST("/sales", middleware.RequireActor(), h.createSale)
	group.GET("/batches/:batchID", h.getBatchLines)
}

// createSale commits one checkout as a single batch.
func (h *saleHandler) createSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateSaleRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorFromCtx(c.Request.Context())
	logger = logger.With(slog.String("actor_id", actorID))

	sale, err := h.saleService.ProcessSale(c.Request.Context(), createReq, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to process sale")
		return
	}

	logger.Info("Sale committed", slog.String("batch_id", sale.BatchID))
	c.JSON(http.StatusCreated, sale)
}

// getBatchLines returns every ledger row of one batch.
func (h *saleHandler) getBatchLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	batchID := c.Param("batchID")

	lines, err := h.reportingService.BatchLines(c.Request.Context(), batchID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve batch")
		return
	}
	c.JSON(http.StatusOK, lines)
}
