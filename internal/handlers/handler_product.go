package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
	"github.com/posledger/pos_ledger_app/internal/dto"
	"github.com/posledger/pos_ledger_app/internal/middleware"
)

// productHandler handles HTTP requests for the product catalogue.
type productHandler struct {
	productService portssvc.ProductSvcFacade
}

func newProductHandler(productService portssvc.ProductSvcFacade) *productHandler {
	return &productHandler{productService: productService}
}

func registerProductRoutes(group *gin.RouterGroup, productService portssvc.ProductSvcFacade) {
	h := newProductHandler(productService)
	products := group.Group("/products")
	products.POST("", middleware.RequireActor(), h.createProduct)
	products.PUT("/:productID", middleware.RequireActor(), h.updateProduct)
	products.GET("", h.listProducts)
	products.GET("/:productID", h.getProduct)
}

func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	createReq := dto.CreateProductRequest{}
	if err := c.ShouldBindJSON(&createReq); err != nil {
		logger.Error("Failed to bind JSON for createProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorFromCtx(c.Request.Context())

	product, err := h.productService.CreateProduct(c.Request.Context(), createReq, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create product")
		return
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, product)
}

func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	updateReq := dto.UpdateProductRequest{}
	if err := c.ShouldBindJSON(&updateReq); err != nil {
		logger.Error("Failed to bind JSON for updateProduct", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, _ := middleware.GetActorFromCtx(c.Request.Context())

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, updateReq, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update product")
		return
	}

	logger.Info("Product updated", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusOK, product)
}

func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	limit, offset := paginationParams(c)
	products, err := h.productService.ListProducts(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}
