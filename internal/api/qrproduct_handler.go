package api

import (
	"net/http"

	"example.com/westo/services/garment/internal/service"

	"github.com/gin-gonic/gin"
)

// QRProductHandler handles QR product HTTP requests
type QRProductHandler struct {
	qrService *service.QRProductService
}

// NewQRProductHandler creates a new QR product handler
func NewQRProductHandler(qrService *service.QRProductService) *QRProductHandler {
	return &QRProductHandler{qrService: qrService}
}

// RegisterRoutes registers the QR product routes
func (h *QRProductHandler) RegisterRoutes(router gin.IRouter) {
	products := router.Group("/qr-products")
	{
		products.POST("", h.CreateManualEntry)
		products.GET("", h.ListProducts)
		products.GET("/search", h.SearchProducts)
		products.GET("/:manufacturingId", h.GetProduct)
		products.DELETE("/:manufacturingId", h.DeleteProduct)
	}
}

// CreateManualEntry creates a QR product without a manufacturing order
func (h *QRProductHandler) CreateManualEntry(c *gin.Context) {
	var input service.CreateManualEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body: " + err.Error(),
			Code:    "INVALID_REQUEST",
		})
		return
	}

	product, err := h.qrService.CreateManualEntry(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// ListProducts lists all QR products
func (h *QRProductHandler) ListProducts(c *gin.Context) {
	products, err := h.qrService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// SearchProducts searches QR products by free text
func (h *QRProductHandler) SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "query parameter q is required",
			Code:    "INVALID_REQUEST",
		})
		return
	}

	hits, err := h.qrService.Search(c.Request.Context(), query)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"results": hits,
	})
}

// GetProduct returns the QR product for a manufacturing ID
func (h *QRProductHandler) GetProduct(c *gin.Context) {
	product, err := h.qrService.GetByManufacturingID(c.Request.Context(), c.Param("manufacturingId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes the QR product for a manufacturing ID
func (h *QRProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.qrService.Delete(c.Request.Context(), c.Param("manufacturingId")); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "QR product deleted"})
}
