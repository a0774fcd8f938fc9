package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/posledger/pos_ledger_app/internal/apperrors"
	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/middleware"
	"github.com/posledger/pos_ledger_app/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	// Every route resolves the acting seller from the X-Actor-ID header;
	// write routes refuse requests without one.
	v1 := r.Group("/api/v1", middleware.ActorMiddleware())

	registerSaleRoutes(v1, services.Sale, services.Reporting)
	registerRestockRoutes(v1, services.Restock)
	registerPayoutRoutes(v1, services.Payout)
	registerRaffleRoutes(v1, services.Raffle)
	registerReportingRoutes(v1, services.Reporting)
	registerProductRoutes(v1, services.Product)
	registerCustomerRoutes(v1, services.Customer)
}

// respondServiceError translates service-layer errors into HTTP responses.
// Typed stock and credit errors come back as 422 with their full multi-line
// detail; conflicts tell the client to retry the whole request.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var stockErr *apperrors.InsufficientStockError
	var creditErr *apperrors.InsufficientCreditError

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &stockErr):
		logger.Warn("Insufficient stock", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":      stockErr.Error(),
			"shortfalls": stockErr.Shortfalls,
		})
	case errors.As(err, &creditErr):
		logger.Warn("Insufficient credit", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": creditErr.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent conflict, client should retry", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "concurrent update conflict, retry the request"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
