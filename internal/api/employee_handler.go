package api

import (
	"net/http"

	"example.com/westo/services/garment/internal/service"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler handles employee and attendance HTTP requests
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// RegisterRoutes registers the employee routes
func (h *EmployeeHandler) RegisterRoutes(router gin.IRouter) {
	employees := router.Group("/employees")
	{
		employees.POST("", h.CreateEmployee)
		employees.GET("", h.ListEmployees)
		employees.GET("/:employeeId", h.GetEmployee)
		employees.DELETE("/:employeeId", h.DeleteEmployee)
		employees.POST("/:employeeId/check-in", h.CheckIn)
		employees.POST("/:employeeId/check-out", h.CheckOut)
		employees.GET("/:employeeId/attendance", h.AttendanceByEmployee)
	}

	router.GET("/attendance", h.AttendanceByDate)
}

// CreateEmployee creates an employee
func (h *EmployeeHandler) CreateEmployee(c *gin.Context) {
	var input service.CreateEmployeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "invalid request body: " + err.Error(),
			Code:    "INVALID_REQUEST",
		})
		return
	}

	employee, err := h.employeeService.CreateEmployee(c.Request.Context(), input)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// ListEmployees lists all employees
func (h *EmployeeHandler) ListEmployees(c *gin.Context) {
	employees, err := h.employeeService.ListEmployees(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

// GetEmployee returns a single employee
func (h *EmployeeHandler) GetEmployee(c *gin.Context) {
	employee, err := h.employeeService.GetEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee soft-deletes an employee
func (h *EmployeeHandler) DeleteEmployee(c *gin.Context) {
	if err := h.employeeService.DeleteEmployee(c.Request.Context(), c.Param("employeeId")); err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}

// CheckIn records today's check-in for an employee
func (h *EmployeeHandler) CheckIn(c *gin.Context) {
	attendance, err := h.employeeService.CheckIn(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attendance)
}

// CheckOut records today's check-out for an employee
func (h *EmployeeHandler) CheckOut(c *gin.Context) {
	attendance, err := h.employeeService.CheckOut(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, attendance)
}

// AttendanceByEmployee lists attendance history for an employee
func (h *EmployeeHandler) AttendanceByEmployee(c *gin.Context) {
	records, err := h.employeeService.AttendanceByEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}

// AttendanceByDate lists attendance for a date given as ?date=YYYY-MM-DD
func (h *EmployeeHandler) AttendanceByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "query parameter date is required",
			Code:    "INVALID_REQUEST",
		})
		return
	}

	records, err := h.employeeService.AttendanceByDate(c.Request.Context(), date)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, records)
}
