package api

import (
	"net/http"

	"example.com/westo/services/garment/internal/service"

	"github.com/gin-gonic/gin"
)

// FabricHandler handles fabric and stock transaction HTTP requests
type FabricHandler struct {
	fabricService *service.FabricService
}

// NewFabricHandler creates a new fabric handler
func NewFabricHandler(fabricService *service.FabricService) *FabricHandler {
	return &FabricHandler{fabricService: fabricService}
}

// RegisterRoutes registers the fabric routes
func (h *FabricHandler) RegisterRoutes(router gin.IRouter) {
	fabrics := router.Group("/fabrics")
	{
		fabrics.POST("", h.CreateFabric)
		fabrics.GET("", h.ListFabrics)
		fabrics.GET("/:fabricId", h.GetFabric)
		fabrics.DELETE("/:fabricId", h.DeleteFabric)
		fabrics.POST("/:fabricId/transactions", h.RecordTransaction)
		fabrics.GET("/:fabricId/transactions", h.ListTransactions)
	}
}

// CreateFabric creates a fabric
func (h *FabricHandler) CreateFabric(c *gin.Context) {
	var input service.CreateFabricInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body: " + err.Error(),
			Code:    "INVALID_REQUEST",
		})
		return
	}

	fabric, err := h.fabricService.CreateFabric(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, fabric)
}

// ListFabrics lists all fabrics
func (h *FabricHandler) ListFabrics(c *gin.Context) {
	fabrics, err := h.fabricService.ListFabrics(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fabrics)
}

// GetFabric returns a single fabric
func (h *FabricHandler) GetFabric(c *gin.Context) {
	fabric, err := h.fabricService.GetFabric(c.Request.Context(), c.Param("fabricId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, fabric)
}

// DeleteFabric soft-deletes a fabric
func (h *FabricHandler) DeleteFabric(c *gin.Context) {
	if err := h.fabricService.DeleteFabric(c.Request.Context(), c.Param("fabricId")); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "fabric deleted"})
}

// RecordTransaction applies a stock movement to a fabric
func (h *FabricHandler) RecordTransaction(c *gin.Context) {
	var input service.RecordTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body: " + err.Error(),
			Code:    "INVALID_REQUEST",
		})
		return
	}
	input.FabricID = c.Param("fabricId")

	transaction, err := h.fabricService.RecordTransaction(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// ListTransactions lists the stock transactions of a fabric
func (h *FabricHandler) ListTransactions(c *gin.Context) {
	transactions, err := h.fabricService.ListTransactions(c.Request.Context(), c.Param("fabricId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactions)
}
