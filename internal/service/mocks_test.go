package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"example.com/westo/services/garment/internal/messaging"
	"example.com/westo/services/garment/internal/models"
)

// Mock repositories for testing

type MockCuttingRecordRepository struct {
	mock.Mock
}

func (m *MockCuttingRecordRepository) Create(ctx context.Context, record *models.CuttingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCuttingRecordRepository) GetByCuttingID(ctx context.Context, cuttingID string) (*models.CuttingRecord, error) {
	args := m.Called(ctx, cuttingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CuttingRecord), args.Error(1)
}

func (m *MockCuttingRecordRepository) List(ctx context.Context) ([]models.CuttingRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CuttingRecord), args.Error(1)
}

func (m *MockCuttingRecordRepository) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCuttingRecordRepository) Update(ctx context.Context, record *models.CuttingRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockCuttingRecordRepository) Delete(ctx context.Context, cuttingID string) error {
	args := m.Called(ctx, cuttingID)
	return args.Error(0)
}

type MockManufacturingOrderRepository struct {
	mock.Mock
}

func (m *MockManufacturingOrderRepository) CreateWithReservation(ctx context.Context, cuttingRecordID uuid.UUID, order *models.ManufacturingOrder) error {
	args := m.Called(ctx, cuttingRecordID, order)
	return args.Error(0)
}

func (m *MockManufacturingOrderRepository) GetByManufacturingID(ctx context.Context, manufacturingID string) (*models.ManufacturingOrder, error) {
	args := m.Called(ctx, manufacturingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ManufacturingOrder), args.Error(1)
}

func (m *MockManufacturingOrderRepository) List(ctx context.Context) ([]models.ManufacturingOrder, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ManufacturingOrder), args.Error(1)
}

func (m *MockManufacturingOrderRepository) ListByCuttingID(ctx context.Context, cuttingID string) ([]models.ManufacturingOrder, error) {
	args := m.Called(ctx, cuttingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ManufacturingOrder), args.Error(1)
}

func (m *MockManufacturingOrderRepository) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockManufacturingOrderRepository) UpdateStatus(ctx context.Context, manufacturingID string, status models.OrderStatus) error {
	args := m.Called(ctx, manufacturingID, status)
	return args.Error(0)
}

func (m *MockManufacturingOrderRepository) FindCompletedWithoutQR(ctx context.Context, limit int) ([]models.ManufacturingOrder, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ManufacturingOrder), args.Error(1)
}

func (m *MockManufacturingOrderRepository) Delete(ctx context.Context, manufacturingID string, permanent bool) error {
	args := m.Called(ctx, manufacturingID, permanent)
	return args.Error(0)
}

type MockQRProductRepository struct {
	mock.Mock
}

func (m *MockQRProductRepository) Create(ctx context.Context, product *models.QRProduct) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockQRProductRepository) GetByManufacturingID(ctx context.Context, manufacturingID string) (*models.QRProduct, error) {
	args := m.Called(ctx, manufacturingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QRProduct), args.Error(1)
}

func (m *MockQRProductRepository) List(ctx context.Context) ([]models.QRProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QRProduct), args.Error(1)
}

func (m *MockQRProductRepository) ListManualIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockQRProductRepository) ExistsForManufacturingID(ctx context.Context, manufacturingID string) (bool, error) {
	args := m.Called(ctx, manufacturingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockQRProductRepository) DeleteByManufacturingID(ctx context.Context, manufacturingID string) error {
	args := m.Called(ctx, manufacturingID)
	return args.Error(0)
}

type MockFabricRepository struct {
	mock.Mock
}

func (m *MockFabricRepository) Create(ctx context.Context, fabric *models.Fabric) error {
	args := m.Called(ctx, fabric)
	return args.Error(0)
}

func (m *MockFabricRepository) GetByFabricID(ctx context.Context, fabricID string) (*models.Fabric, error) {
	args := m.Called(ctx, fabricID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Fabric), args.Error(1)
}

func (m *MockFabricRepository) List(ctx context.Context) ([]models.Fabric, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Fabric), args.Error(1)
}

func (m *MockFabricRepository) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFabricRepository) Update(ctx context.Context, fabric *models.Fabric) error {
	args := m.Called(ctx, fabric)
	return args.Error(0)
}

func (m *MockFabricRepository) Delete(ctx context.Context, fabricID string) error {
	args := m.Called(ctx, fabricID)
	return args.Error(0)
}

func (m *MockFabricRepository) AddStock(ctx context.Context, fabricID string, meters float64) (float64, error) {
	args := m.Called(ctx, fabricID, meters)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockFabricRepository) RemoveStock(ctx context.Context, fabricID string, meters float64) (float64, error) {
	args := m.Called(ctx, fabricID, meters)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockFabricRepository) CreateTransaction(ctx context.Context, txn *models.StockTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockFabricRepository) ListTransactions(ctx context.Context, fabricID string) ([]models.StockTransaction, error) {
	args := m.Called(ctx, fabricID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StockTransaction), args.Error(1)
}

type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context) ([]models.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, employeeID string) error {
	args := m.Called(ctx, employeeID)
	return args.Error(0)
}

func (m *MockEmployeeRepository) CreateAttendance(ctx context.Context, attendance *models.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetAttendance(ctx context.Context, employeeID, date string) (*models.Attendance, error) {
	args := m.Called(ctx, employeeID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attendance), args.Error(1)
}

func (m *MockEmployeeRepository) UpdateAttendance(ctx context.Context, attendance *models.Attendance) error {
	args := m.Called(ctx, attendance)
	return args.Error(0)
}

func (m *MockEmployeeRepository) ListAttendanceByDate(ctx context.Context, date string) ([]models.Attendance, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attendance), args.Error(1)
}

func (m *MockEmployeeRepository) ListAttendanceByEmployee(ctx context.Context, employeeID string) ([]models.Attendance, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attendance), args.Error(1)
}

// MockPublisher captures published events
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event messaging.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
