package api

import (
	"net/http"

	"example.com/westo/services/garment/internal/models"
	"example.com/westo/services/garment/internal/service"
	"example.com/westo/services/garment/internal/tracing"

	"github.com/gin-gonic/gin"
)

// ManufacturingHandler handles manufacturing order HTTP requests
type ManufacturingHandler struct {
	manufacturingService *service.ManufacturingService
	tracer               tracing.Tracer
}

// NewManufacturingHandler creates a new manufacturing order handler
func NewManufacturingHandler(manufacturingService *service.ManufacturingService, tracer tracing.Tracer) *ManufacturingHandler {
	return &ManufacturingHandler{
		manufacturingService: manufacturingService,
		tracer:               tracer,
	}
}

// RegisterRoutes registers the manufacturing order routes
func (h *ManufacturingHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/manufacturing-orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:manufacturingId", h.GetOrder)
		orders.PATCH("/:manufacturingId/status", h.UpdateStatus)
		orders.DELETE("/:manufacturingId", h.DeleteOrder)
	}
}

// UpdateStatusRequest carries a status change for an order
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder creates a manufacturing order, reserving quantity from
// the referenced cutting record's size breakdown
func (h *ManufacturingHandler) CreateOrder(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-create-manufacturing-order")
	defer h.tracer.EndTransaction(txn)

	var input service.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body: " + err.Error(),
			Code:    "INVALID_REQUEST",
		})
		return
	}

	order, err := h.manufacturingService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		h.tracer.RecordError(txn, err)
		RespondError(c, err)
		return
	}

	h.tracer.AddAttribute(txn, "manufacturing_id", order.ManufacturingID)
	c.JSON(http.StatusCreated, order)
}

// ListOrders lists manufacturing orders, optionally filtered by the
// cutting_id query parameter
func (h *ManufacturingHandler) ListOrders(c *gin.Context) {
	if cuttingID := c.Query("cutting_id"); cuttingID != "" {
		orders, err := h.manufacturingService.ListOrdersByCutting(c.Request.Context(), cuttingID)
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
		return
	}

	orders, err := h.manufacturingService.ListOrders(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder returns a single manufacturing order
func (h *ManufacturingHandler) GetOrder(c *gin.Context) {
	order, err := h.manufacturingService.GetOrder(c.Request.Context(), c.Param("manufacturingId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// UpdateStatus transitions a manufacturing order to a new status
func (h *ManufacturingHandler) UpdateStatus(c *gin.Context) {
	txn := h.tracer.StartTransaction("api-update-order-status")
	defer h.tracer.EndTransaction(txn)

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body: " + err.Error(),
			Code:    "INVALID_REQUEST",
		})
		return
	}

	order, err := h.manufacturingService.UpdateStatus(c.Request.Context(), c.Param("manufacturingId"), models.OrderStatus(req.Status))
	if err != nil {
		// A completed order whose QR product creation failed still
		// carries the new status; surface both to the caller.
		if order != nil {
			h.tracer.RecordError(txn, err)
			c.JSON(http.StatusOK, gin.H{
				"order":   order,
				"warning": err.Error(),
			})
			return
		}
		h.tracer.RecordError(txn, err)
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder deletes a manufacturing order. With ?permanent=true the
// row is removed outright along with its QR products.
func (h *ManufacturingHandler) DeleteOrder(c *gin.Context) {
	permanent := c.Query("permanent") == "true"

	if err := h.manufacturingService.DeleteOrder(c.Request.Context(), c.Param("manufacturingId"), permanent); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "manufacturing order deleted"})
}
