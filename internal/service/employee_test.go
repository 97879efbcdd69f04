package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/westo/services/garment/internal/models"
	"example.com/westo/services/garment/internal/repository"
)

func TestCreateEmployee(t *testing.T) {
	employeeRepo := new(MockEmployeeRepository)
	employeeRepo.On("ListIDs", mock.Anything).Return([]string{"EMP0001", "EMP0002"}, nil)
	employeeRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Employee")).Return(nil)

	service := NewEmployeeService(employeeRepo)

	employee, err := service.CreateEmployee(context.Background(), CreateEmployeeInput{
		Name: "Meena",
		Role: "Tailor",
	})

	require.NoError(t, err)
	require.Equal(t, "EMP0003", employee.EmployeeID)

	employeeRepo.AssertExpectations(t)
}

func TestCheckIn(t *testing.T) {
	employeeRepo := new(MockEmployeeRepository)
	employee := &models.Employee{ID: uuid.New(), EmployeeID: "EMP0001"}

	employeeRepo.On("GetByEmployeeID", mock.Anything, "EMP0001").Return(employee, nil)
	employeeRepo.On("CreateAttendance", mock.Anything, mock.AnythingOfType("*models.Attendance")).Return(nil)

	service := NewEmployeeService(employeeRepo)

	attendance, err := service.CheckIn(context.Background(), "EMP0001")
	require.NoError(t, err)
	require.Equal(t, "EMP0001", attendance.EmployeeID)
	require.Equal(t, time.Now().Format("2006-01-02"), attendance.Date)
	require.Nil(t, attendance.CheckOut)
}

func TestCheckInTwiceConflicts(t *testing.T) {
	employeeRepo := new(MockEmployeeRepository)
	employee := &models.Employee{ID: uuid.New(), EmployeeID: "EMP0001"}

	employeeRepo.On("GetByEmployeeID", mock.Anything, "EMP0001").Return(employee, nil)
	// Unique index on employee and date rejects the second insert
	employeeRepo.On("CreateAttendance", mock.Anything, mock.AnythingOfType("*models.Attendance")).
		Return(repository.ErrDuplicateKey)

	service := NewEmployeeService(employeeRepo)

	_, err := service.CheckIn(context.Background(), "EMP0001")
	require.ErrorIs(t, err, ErrConflict)
}

func TestCheckOut(t *testing.T) {
	employeeRepo := new(MockEmployeeRepository)
	today := time.Now().Format("2006-01-02")
	attendance := &models.Attendance{
		ID:         uuid.New(),
		EmployeeID: "EMP0001",
		Date:       today,
		CheckIn:    time.Now().Add(-8 * time.Hour),
	}

	employeeRepo.On("GetAttendance", mock.Anything, "EMP0001", today).Return(attendance, nil)
	employeeRepo.On("UpdateAttendance", mock.Anything, attendance).Return(nil)

	service := NewEmployeeService(employeeRepo)

	updated, err := service.CheckOut(context.Background(), "EMP0001")
	require.NoError(t, err)
	require.NotNil(t, updated.CheckOut)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	employeeRepo := new(MockEmployeeRepository)
	today := time.Now().Format("2006-01-02")
	employeeRepo.On("GetAttendance", mock.Anything, "EMP0001", today).Return(nil, repository.ErrNotFound)

	service := NewEmployeeService(employeeRepo)

	_, err := service.CheckOut(context.Background(), "EMP0001")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCheckOutTwice(t *testing.T) {
	employeeRepo := new(MockEmployeeRepository)
	today := time.Now().Format("2006-01-02")
	out := time.Now().Add(-time.Hour)
	attendance := &models.Attendance{
		EmployeeID: "EMP0001",
		Date:       today,
		CheckOut:   &out,
	}
	employeeRepo.On("GetAttendance", mock.Anything, "EMP0001", today).Return(attendance, nil)

	service := NewEmployeeService(employeeRepo)

	_, err := service.CheckOut(context.Background(), "EMP0001")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAttendanceByDateValidatesFormat(t *testing.T) {
	service := NewEmployeeService(new(MockEmployeeRepository))

	var verr *ValidationError
	_, err := service.AttendanceByDate(context.Background(), "31-08-2026")
	require.ErrorAs(t, err, &verr)
}
