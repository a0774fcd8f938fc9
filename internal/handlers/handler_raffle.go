package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/dto"
	"github.com/posledger/pos_ledger_app/internal/middleware"
)

// raffleHandler handles HTTP requests for raffles and ticket sales.
type raffleHandler struct {
	raffleService portssvc.RaffleSvcFacade
}

func newRaffleHandler(raffleService portssvc.RaffleSvcFacade) *raffleHandler {
	return &raffleHandler{raffleService: raffleService}
}

func registerRaffleRoutes(group *gin.RouterGroup, raffleService portssvc.RaffleSvcFacade) {
	h := newRaffleHandler(raffleService)
	raffles := group.Group("/raffles")
	raffles.POST("", middleware.RequireActor(), h.createRaffle)
	raffles.GET("", h.listRaffles)
	raffles.GET("/:raffleID", h.getRaffle)
	raffles.POST("/:raffleID/tickets", middleware.RequireActor(), h.sellTickets)
}

func (h *raffleHandler) createRaffle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateRaffleRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createRaffle", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorFromCtx(c.Request.Context())

	raffle, err := h.raffleService.CreateRaffle(c.Request.Context(), createReq, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create raffle")
		return
	}

	logger.Info("Raffle created", slog.String("raffle_id", raffle.RaffleID))
	c.JSON(http.StatusCreated, raffle)
}

func (h *raffleHandler) getRaffle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	raffleID := c.Param("raffleID")

	raffle, err := h.raffleService.GetRaffle(c.Request.Context(), raffleID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve raffle")
		return
	}
	c.JSON(http.StatusOK, raffle)
}

func (h *raffleHandler) listRaffles(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset := paginationParams(c)
	raffles, err := h.raffleService.ListRaffles(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list raffles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"raffles": raffles})
}

func (h *raffleHandler) sellTickets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	raffleID := c.Param("raffleID")

	sellReq := dto.SellTicketsRequest{}
	if err := c.ShouldBindJSON(&sellReq); err != nil {
		logger.Error("Failed to bind JSON for sellTickets", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorFromCtx(c.Request.Context())

	result, err := h.raffleService.SellTickets(c.Request.Context(), raffleID, sellReq, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to sell tickets")
		return
	}

	logger.Info("Tickets sold",
		slog.String("raffle_id", raffleID),
		slog.String("batch_id", result.BatchID),
		slog.Int("count", len(result.TicketNumbers)))
	c.JSON(http.StatusCreated, result)
}
