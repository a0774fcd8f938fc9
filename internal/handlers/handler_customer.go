package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/middleware"
)

// customerHandler handles HTTP requests for customers and their balances.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(customerService portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{customerService: customerService}
}

func registerCustomerRoutes(group *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)
	customers := group.Group("/customers")
	customers.GET("", h.listCustomers)
	customers.GET("/:customerID", h.getCustomer)
}

func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID := c.Param("customerID")

	customer, err := h.customerService.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve customer")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *customerHandler) listCustomers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset := paginationParams(c)
	customers, err := h.customerService.ListCustomers(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list customers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}
