package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/westo/services/garment/internal/models"
	"example.com/westo/services/garment/internal/repository"
)

// attendanceDateLayout is the day key for attendance records
const attendanceDateLayout = "2006-01-02"

// EmployeeService handles employees and their daily attendance
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// CreateEmployeeInput carries the fields for a new employee
type CreateEmployeeInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// CreateEmployee allocates the next EMP identifier and creates an
// employee
func (s *EmployeeService) CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*models.Employee, error) {
	if input.Name == "" {
		return nil, newValidationError("employee name is required")
	}

	employee := &models.Employee{
		ID:          uuid.New(),
		EmployeeID:  allocateID(ctx, PrefixEmployee, s.employeeRepo.ListIDs),
		Name:        input.Name,
		Phone:       input.Phone,
		Role:        input.Role,
		JoiningDate: time.Now(),
	}

	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, errors.Wrap(fromRepoError(err), "failed to create employee")
	}

	log.Info().Str("employee_id", employee.EmployeeID).Msg("Employee created")
	return employee, nil
}

// GetEmployee gets an employee by business identifier
func (s *EmployeeService) GetEmployee(ctx context.Context, employeeID string) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, fromRepoError(err)
	}
	return employee, nil
}

// ListEmployees returns all employees
func (s *EmployeeService) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.employeeRepo.List(ctx)
}

// DeleteEmployee soft-deletes an employee
func (s *EmployeeService) DeleteEmployee(ctx context.Context, employeeID string) error {
	return fromRepoError(s.employeeRepo.Delete(ctx, employeeID))
}

// CheckIn records an employee's arrival for today. A second check-in on
// the same day is rejected as a conflict.
func (s *EmployeeService) CheckIn(ctx context.Context, employeeID string) (*models.Attendance, error) {
	if _, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID); err != nil {
		return nil, fromRepoError(err)
	}

	now := time.Now()
	attendance := &models.Attendance{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Date:       now.Format(attendanceDateLayout),
		CheckIn:    now,
		Status:     "Present",
	}

	if err := s.employeeRepo.CreateAttendance(ctx, attendance); err != nil {
		return nil, errors.Wrap(fromRepoError(err), "failed to record check-in")
	}

	log.Info().Str("employee_id", employeeID).Msg("Employee checked in")
	return attendance, nil
}

// CheckOut records an employee's departure for today
func (s *EmployeeService) CheckOut(ctx context.Context, employeeID string) (*models.Attendance, error) {
	now := time.Now()
	attendance, err := s.employeeRepo.GetAttendance(ctx, employeeID, now.Format(attendanceDateLayout))
	if err != nil {
		return nil, fromRepoError(err)
	}
	if attendance.CheckOut != nil {
		return nil, newValidationError("employee %s already checked out today", employeeID)
	}

	attendance.CheckOut = &now
	if err := s.employeeRepo.UpdateAttendance(ctx, attendance); err != nil {
		return nil, errors.Wrap(fromRepoError(err), "failed to record check-out")
	}

	log.Info().Str("employee_id", employeeID).Msg("Employee checked out")
	return attendance, nil
}

// AttendanceByDate returns all attendance records for a date
// (YYYY-MM-DD)
func (s *EmployeeService) AttendanceByDate(ctx context.Context, date string) ([]models.Attendance, error) {
	if _, err := time.Parse(attendanceDateLayout, date); err != nil {
		return nil, newValidationError("invalid date %q, expected YYYY-MM-DD", date)
	}
	return s.employeeRepo.ListAttendanceByDate(ctx, date)
}

// AttendanceByEmployee returns one employee's attendance history
func (s *EmployeeService) AttendanceByEmployee(ctx context.Context, employeeID string) ([]models.Attendance, error) {
	if _, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID); err != nil {
		return nil, fromRepoError(err)
	}
	return s.employeeRepo.ListAttendanceByEmployee(ctx, employeeID)
}
