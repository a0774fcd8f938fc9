package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/middleware"
)

const dateFormat = "2006-01-02"

// reportingHandler handles HTTP requests for ledger rollups.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	reports := group.Group("/reports")
	reports.GET("/daily", h.getDailySummary)
	reports.GET("/batches", h.getBatchSummary)
	reports.GET("/products", h.getProductAverages)
}

// paginationParams reads limit/offset query params with sane defaults.
func paginationParams(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// dateRangeParams reads the from/to query params. to is inclusive: the
// returned end bound is the last instant of that calendar day.
func dateRangeParams(c *gin.Context) (time.Time, time.Time, bool) {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and to query parameters are required (YYYY-MM-DD)"})
		return time.Time{}, time.Time{}, false
	}
	from, err := time.Parse(dateFormat, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateFormat, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to = to.Add(24*time.Hour - time.Nanosecond)
	return from, to, true
}

func (h *reportingHandler) getDailySummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := dateRangeParams(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.DailySummary(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to build daily summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) getBatchSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := dateRangeParams(c)
	if !ok {
		return
	}
	limit, _ := paginationParams(c)

	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	summary, err := h.reportingService.BatchSummary(c.Request.Context(), from, to, limit, nextToken)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list batches")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) getProductAverages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := dateRangeParams(c)
	if !ok {
		return
	}

	averages, err := h.reportingService.ProductAverages(c.Request.Context(), from, to)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute product averages")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": averages})
}
