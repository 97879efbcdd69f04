package repository

import (
	"context"

	"gorm.io/gorm"

	"example.com/westo/services/garment/internal/models"
)

// EmployeeRepository defines access to employee and attendance data
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error)
	List(ctx context.Context) ([]models.Employee, error)
	ListIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, employeeID string) error

	CreateAttendance(ctx context.Context, attendance *models.Attendance) error
	GetAttendance(ctx context.Context, employeeID, date string) (*models.Attendance, error)
	UpdateAttendance(ctx context.Context, attendance *models.Attendance) error
	ListAttendanceByDate(ctx context.Context, date string) ([]models.Attendance, error)
	ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]models.Attendance, error)
}

// employeeRepository implements EmployeeRepository
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create creates an employee
func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return translate(r.db.WithContext(ctx).Create(employee).Error)
}

// GetByEmployeeID gets an employee by business identifier
func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&employee).Error
	if err != nil {
		return nil, translate(err)
	}
	return &employee, nil
}

// List returns all employees
func (r *employeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).
		Order("employee_id").
		Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// ListIDs returns the business identifiers of all employees, including
// soft-deleted ones so their numbers are never reissued
func (r *employeeRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Unscoped().
		Pluck("employee_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Update saves changes to an employee
func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return translate(r.db.WithContext(ctx).Save(employee).Error)
}

// Delete soft-deletes an employee
func (r *employeeRepository) Delete(ctx context.Context, employeeID string) error {
	result := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Delete(&models.Employee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateAttendance records a check-in. The unique index on employee and
// date rejects a second check-in for the same day.
func (r *employeeRepository) CreateAttendance(ctx context.Context, attendance *models.Attendance) error {
	return translate(r.db.WithContext(ctx).Create(attendance).Error)
}

// GetAttendance gets one employee's attendance for a date
func (r *employeeRepository) GetAttendance(ctx context.Context, employeeID, date string) (*models.Attendance, error) {
	var attendance models.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date = ?", employeeID, date).
		First(&attendance).Error
	if err != nil {
		return nil, translate(err)
	}
	return &attendance, nil
}

// UpdateAttendance saves changes to an attendance record
func (r *employeeRepository) UpdateAttendance(ctx context.Context, attendance *models.Attendance) error {
	return translate(r.db.WithContext(ctx).Save(attendance).Error)
}

// ListAttendanceByDate returns all attendance records for a date
func (r *employeeRepository) ListAttendanceByDate(ctx context.Context, date string) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("employee_id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListAttendanceByEmployee returns one employee's attendance history
func (r *employeeRepository) ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]models.Attendance, error) {
	var records []models.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
