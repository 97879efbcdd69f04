package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/westo/services/garment/internal/cache"
	"example.com/westo/services/garment/internal/messaging"
	"example.com/westo/services/garment/internal/metrics"
	"example.com/westo/services/garment/internal/models"
	"example.com/westo/services/garment/internal/repository"
	"example.com/westo/services/garment/internal/tracing"
)

type manufacturingFixture struct {
	orderRepo   *MockManufacturingOrderRepository
	cuttingRepo *MockCuttingRecordRepository
	qrRepo      *MockQRProductRepository
	publisher   *MockPublisher
	metrics     *metrics.Metrics
	service     *ManufacturingService
}

func newManufacturingFixture() *manufacturingFixture {
	f := &manufacturingFixture{
		orderRepo:   new(MockManufacturingOrderRepository),
		cuttingRepo: new(MockCuttingRecordRepository),
		qrRepo:      new(MockQRProductRepository),
		publisher:   new(MockPublisher),
		metrics:     metrics.NewMetrics(),
	}
	f.service = NewManufacturingService(
		f.orderRepo, f.cuttingRepo, f.qrRepo, f.publisher,
		&cache.RedisCache{}, f.metrics, &tracing.NewRelicTracer{},
	)
	return f
}

func testCuttingRecord() *models.CuttingRecord {
	return &models.CuttingRecord{
		ID:          uuid.New(),
		CuttingID:   "CUT0001",
		ProductName: "Kids T-Shirt",
		FabricColor: "Navy",
		PiecesCount: 30,
		SizeBreakdowns: []models.SizeBreakdown{
			{Size: models.SizeS, InitialQuantity: 20, Quantity: 20},
			{Size: models.SizeM, InitialQuantity: 10, Quantity: 10},
		},
	}
}

func TestCreateOrderReservesQuantity(t *testing.T) {
	f := newManufacturingFixture()
	record := testCuttingRecord()

	f.cuttingRepo.On("GetByCuttingID", mock.Anything, "CUT0001").Return(record, nil)
	f.orderRepo.On("ListIDs", mock.Anything).Return([]string{}, nil)
	f.orderRepo.On("CreateWithReservation", mock.Anything, record.ID,
		mock.AnythingOfType("*models.ManufacturingOrder")).Return(nil)

	order, err := f.service.CreateOrder(context.Background(), CreateOrderInput{
		CuttingID:  "CUT0001",
		Size:       models.SizeM,
		Quantity:   4,
		TailorName: "Ravi",
	})

	require.NoError(t, err)
	require.Equal(t, "MFG0001", order.ManufacturingID)
	require.Equal(t, models.OrderStatusPending, order.Status)
	require.Equal(t, record.ProductName, order.ProductName)
	require.Equal(t, record.FabricColor, order.FabricColor)
	require.Equal(t, 4, order.Quantity)

	f.orderRepo.AssertExpectations(t)
}

func TestCreateOrderInsufficientQuantity(t *testing.T) {
	f := newManufacturingFixture()
	record := testCuttingRecord()
	// 4 of 10 M pieces already assigned
	record.SizeBreakdowns[1].Quantity = 6

	f.cuttingRepo.On("GetByCuttingID", mock.Anything, "CUT0001").Return(record, nil)
	f.orderRepo.On("ListIDs", mock.Anything).Return([]string{"MFG0001"}, nil)
	f.orderRepo.On("CreateWithReservation", mock.Anything, record.ID,
		mock.AnythingOfType("*models.ManufacturingOrder")).Return(repository.ErrInsufficientQuantity)

	_, err := f.service.CreateOrder(context.Background(), CreateOrderInput{
		CuttingID: "CUT0001",
		Size:      models.SizeM,
		Quantity:  7,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, models.SizeM, verr.Size)
	require.Equal(t, 7, verr.Requested)
	require.Equal(t, 6, verr.Available)
}

func TestCreateOrderSizeNotInBreakdown(t *testing.T) {
	f := newManufacturingFixture()
	record := testCuttingRecord()

	f.cuttingRepo.On("GetByCuttingID", mock.Anything, "CUT0001").Return(record, nil)
	f.orderRepo.On("ListIDs", mock.Anything).Return([]string{}, nil)
	// The ledger has no XL row, so the conditional decrement matches nothing
	f.orderRepo.On("CreateWithReservation", mock.Anything, record.ID,
		mock.AnythingOfType("*models.ManufacturingOrder")).Return(repository.ErrInsufficientQuantity)

	_, err := f.service.CreateOrder(context.Background(), CreateOrderInput{
		CuttingID: "CUT0001",
		Size:      models.SizeXL,
		Quantity:  1,
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, 0, verr.Available)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newManufacturingFixture()
	ctx := context.Background()

	_, err := f.service.CreateOrder(ctx, CreateOrderInput{CuttingID: "CUT0001", Size: models.SizeM, Quantity: 0})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = f.service.CreateOrder(ctx, CreateOrderInput{CuttingID: "CUT0001", Size: "HUGE", Quantity: 1})
	require.ErrorAs(t, err, &verr)
}

func TestCreateOrderUnknownCuttingRecord(t *testing.T) {
	f := newManufacturingFixture()
	f.cuttingRepo.On("GetByCuttingID", mock.Anything, "CUT0404").Return(nil, repository.ErrNotFound)

	_, err := f.service.CreateOrder(context.Background(), CreateOrderInput{
		CuttingID: "CUT0404",
		Size:      models.SizeM,
		Quantity:  1,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateOrderDuplicateManufacturingID(t *testing.T) {
	f := newManufacturingFixture()
	record := testCuttingRecord()

	f.cuttingRepo.On("GetByCuttingID", mock.Anything, "CUT0001").Return(record, nil)
	f.orderRepo.On("CreateWithReservation", mock.Anything, record.ID,
		mock.AnythingOfType("*models.ManufacturingOrder")).Return(repository.ErrDuplicateKey)

	_, err := f.service.CreateOrder(context.Background(), CreateOrderInput{
		ManufacturingID: "MFG0001",
		CuttingID:       "CUT0001",
		Size:            models.SizeS,
		Quantity:        1,
	})
	require.ErrorIs(t, err, ErrConflict)
}

func TestCompleteOrderCreatesQRProduct(t *testing.T) {
	f := newManufacturingFixture()
	order := &models.ManufacturingOrder{
		ID:              uuid.New(),
		ManufacturingID: "MFG0001",
		CuttingID:       "CUT0001",
		ProductName:     "Kids T-Shirt",
		FabricColor:     "Navy",
		Size:            models.SizeM,
		Quantity:        4,
		TailorName:      "Ravi",
		Status:          models.OrderStatusPending,
	}

	f.orderRepo.On("GetByManufacturingID", mock.Anything, "MFG0001").Return(order, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, "MFG0001", models.OrderStatusCompleted).Return(nil)
	f.qrRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.QRProduct")).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.AnythingOfType("messaging.Event")).Return(nil)

	updated, err := f.service.UpdateStatus(context.Background(), "MFG0001", models.OrderStatusCompleted)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusCompleted, updated.Status)

	// Exactly one QR product, inheriting the order's attributes
	f.qrRepo.AssertNumberOfCalls(t, "Create", 1)
	created := f.qrRepo.Calls[0].Arguments.Get(1).(*models.QRProduct)
	require.Equal(t, "MFG0001", created.ManufacturingID)
	require.Equal(t, "CUT0001", created.CuttingID)
	require.Equal(t, models.SizeM, created.Size)
	require.Equal(t, 4, created.Quantity)
	require.Equal(t, "Ravi", created.TailorName)

	event := f.publisher.Calls[0].Arguments.Get(1).(messaging.Event)
	require.Equal(t, messaging.EventOrderCompleted, event.Type)
	require.Equal(t, "MFG0001", event.Order.ManufacturingID)
}

func TestCompleteOrderQRFailureKeepsStatus(t *testing.T) {
	f := newManufacturingFixture()
	order := &models.ManufacturingOrder{
		ID:              uuid.New(),
		ManufacturingID: "MFG0002",
		Status:          models.OrderStatusPending,
	}

	f.orderRepo.On("GetByManufacturingID", mock.Anything, "MFG0002").Return(order, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, "MFG0002", models.OrderStatusCompleted).Return(nil)
	f.qrRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.QRProduct")).
		Return(errors.New("connection reset"))

	updated, err := f.service.UpdateStatus(context.Background(), "MFG0002", models.OrderStatusCompleted)

	// The committed status change is reported alongside the failure
	require.Error(t, err)
	require.NotNil(t, updated)
	require.Equal(t, models.OrderStatusCompleted, updated.Status)

	// No event until the QR record exists
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestQRDeletedRemovesProduct(t *testing.T) {
	f := newManufacturingFixture()
	order := &models.ManufacturingOrder{
		ID:              uuid.New(),
		ManufacturingID: "MFG0003",
		Status:          models.OrderStatusCompleted,
	}

	f.orderRepo.On("GetByManufacturingID", mock.Anything, "MFG0003").Return(order, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, "MFG0003", models.OrderStatusQRDeleted).Return(nil)
	f.qrRepo.On("DeleteByManufacturingID", mock.Anything, "MFG0003").Return(nil)

	updated, err := f.service.UpdateStatus(context.Background(), "MFG0003", models.OrderStatusQRDeleted)
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusQRDeleted, updated.Status)

	f.qrRepo.AssertExpectations(t)
}

func TestQRDeletedWithoutProductSucceeds(t *testing.T) {
	f := newManufacturingFixture()
	order := &models.ManufacturingOrder{
		ID:              uuid.New(),
		ManufacturingID: "MFG0004",
		Status:          models.OrderStatusPending,
	}

	f.orderRepo.On("GetByManufacturingID", mock.Anything, "MFG0004").Return(order, nil)
	f.orderRepo.On("UpdateStatus", mock.Anything, "MFG0004", models.OrderStatusQRDeleted).Return(nil)
	f.qrRepo.On("DeleteByManufacturingID", mock.Anything, "MFG0004").Return(repository.ErrNotFound)

	_, err := f.service.UpdateStatus(context.Background(), "MFG0004", models.OrderStatusQRDeleted)
	require.NoError(t, err)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newManufacturingFixture()

	_, err := f.service.UpdateStatus(context.Background(), "MFG0001", "Shipped")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	f.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	f := newManufacturingFixture()
	f.orderRepo.On("GetByManufacturingID", mock.Anything, "MFG0404").Return(nil, repository.ErrNotFound)

	_, err := f.service.UpdateStatus(context.Background(), "MFG0404", models.OrderStatusCompleted)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteOrderPermanentCascadesQRProducts(t *testing.T) {
	f := newManufacturingFixture()
	order := &models.ManufacturingOrder{
		ID:              uuid.New(),
		ManufacturingID: "MFG0005",
		CuttingID:       "CUT0001",
	}

	f.orderRepo.On("GetByManufacturingID", mock.Anything, "MFG0005").Return(order, nil)
	f.qrRepo.On("DeleteByManufacturingID", mock.Anything, "MFG0005").Return(nil)
	f.orderRepo.On("Delete", mock.Anything, "MFG0005", true).Return(nil)

	err := f.service.DeleteOrder(context.Background(), "MFG0005", true)
	require.NoError(t, err)

	f.qrRepo.AssertExpectations(t)
	f.orderRepo.AssertExpectations(t)
}

func TestDeleteOrderSoftKeepsQRProducts(t *testing.T) {
	f := newManufacturingFixture()
	order := &models.ManufacturingOrder{
		ID:              uuid.New(),
		ManufacturingID: "MFG0006",
		CuttingID:       "CUT0001",
	}

	f.orderRepo.On("GetByManufacturingID", mock.Anything, "MFG0006").Return(order, nil)
	f.orderRepo.On("Delete", mock.Anything, "MFG0006", false).Return(nil)

	err := f.service.DeleteOrder(context.Background(), "MFG0006", false)
	require.NoError(t, err)

	f.qrRepo.AssertNotCalled(t, "DeleteByManufacturingID", mock.Anything, mock.Anything)
}

func TestReconcileQRProducts(t *testing.T) {
	f := newManufacturingFixture()
	orders := []models.ManufacturingOrder{
		{ID: uuid.New(), ManufacturingID: "MFG0007", Status: models.OrderStatusCompleted},
		{ID: uuid.New(), ManufacturingID: "MFG0008", Status: models.OrderStatusCompleted},
	}

	f.orderRepo.On("FindCompletedWithoutQR", mock.Anything, 100).Return(orders, nil)
	f.qrRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.QRProduct")).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.AnythingOfType("messaging.Event")).Return(nil)

	err := f.service.ReconcileQRProducts(context.Background(), 100)
	require.NoError(t, err)

	f.qrRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestReconcileQRProductsNothingToDo(t *testing.T) {
	f := newManufacturingFixture()
	f.orderRepo.On("FindCompletedWithoutQR", mock.Anything, 50).Return([]models.ManufacturingOrder{}, nil)

	err := f.service.ReconcileQRProducts(context.Background(), 50)
	require.NoError(t, err)

	f.qrRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
