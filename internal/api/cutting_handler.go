package api

import (
	"net/http"

	"example.com/westo/services/garment/internal/service"

	"github.com/gin-gonic/gin"
)

// CuttingHandler handles cutting record HTTP requests
type CuttingHandler struct {
	cuttingService *service.CuttingService
}

// NewCuttingHandler creates a new cutting record handler
func NewCuttingHandler(cuttingService *service.CuttingService) *CuttingHandler {
	return &CuttingHandler{cuttingService: cuttingService}
}

// RegisterRoutes registers the cutting record routes
func (h *CuttingHandler) RegisterRoutes(router gin.IRouter) {
	records := router.Group("/cutting-records")
	{
		records.POST("", h.CreateCuttingRecord)
		records.GET("", h.ListCuttingRecords)
		records.GET("/:cuttingId", h.GetCuttingRecord)
		records.GET("/:cuttingId/availability", h.GetAvailability)
		records.DELETE("/:cuttingId", h.DeleteCuttingRecord)
	}
}

// CreateCuttingRecord creates a cutting record with its size breakdown
func (h *CuttingHandler) CreateCuttingRecord(c *gin.Context) {
	var input service.CreateCuttingRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body: " + err.Error(),
			Code:    "INVALID_REQUEST",
		})
		return
	}

	record, err := h.cuttingService.CreateCuttingRecord(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

// ListCuttingRecords lists all cutting records
func (h *CuttingHandler) ListCuttingRecords(c *gin.Context) {
	records, err := h.cuttingService.ListCuttingRecords(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetCuttingRecord returns a single cutting record with its breakdown
func (h *CuttingHandler) GetCuttingRecord(c *gin.Context) {
	record, err := h.cuttingService.GetCuttingRecord(c.Request.Context(), c.Param("cuttingId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetAvailability returns the per-size remaining quantities
func (h *CuttingHandler) GetAvailability(c *gin.Context) {
	sizes, err := h.cuttingService.AvailableSizes(c.Request.Context(), c.Param("cuttingId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cutting_id": c.Param("cuttingId"),
		"sizes":      sizes,
	})
}

// DeleteCuttingRecord soft-deletes a cutting record
func (h *CuttingHandler) DeleteCuttingRecord(c *gin.Context) {
	if err := h.cuttingService.DeleteCuttingRecord(c.Request.Context(), c.Param("cuttingId")); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "cutting record deleted"})
}
