package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/dto"
	"github.com/posledger/pos_ledger_app/internal/middleware"
)

// payoutHandler handles HTTP requests for manual cash movements.
type payoutHandler struct {
	payoutService portssvc.PayoutSvcFacade
}

func newPayoutHandler(payoutService portssvc.PayoutSvcFacade) *payoutHandler {
	return &payoutHandler{payoutService: payoutService}
}

func registerPayoutRoutes(group *gin.RouterGroup, payoutService portssvc.PayoutSvcFacade) {
	h := newPayoutHandler(payoutService)
	group.POST("/payouts", middleware.RequireActor(), h.createPayout)
}

func (h *payoutHandler) createPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreatePayoutRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createPayout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorFromCtx(c.Request.Context())

	payout, err := h.payoutService.RecordPayout(c.Request.Context(), createReq, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to record payout")
		return
	}

	logger.Info("Payout recorded", slog.String("batch_id", payout.BatchID))
	c.JSON(http.StatusCreated, payout)
}
