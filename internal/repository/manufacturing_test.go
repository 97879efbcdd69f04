package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"example.com/westo/services/garment/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.SetupModels(db))
	return db
}

func seedCuttingRecord(t *testing.T, db *gorm.DB, cuttingID string, size models.Size, quantity int) *models.CuttingRecord {
	t.Helper()
	record := &models.CuttingRecord{
		ID:          uuid.New(),
		CuttingID:   cuttingID,
		FabricID:    "FAB0001",
		ProductName: "Kids T-Shirt",
		PiecesCount: quantity,
		SizeBreakdowns: []models.SizeBreakdown{
			{ID: uuid.New(), Size: size, InitialQuantity: quantity, Quantity: quantity},
		},
	}
	require.NoError(t, db.Create(record).Error)
	return record
}

func newOrder(cuttingID, manufacturingID string, size models.Size, quantity int) *models.ManufacturingOrder {
	return &models.ManufacturingOrder{
		ID:              uuid.New(),
		ManufacturingID: manufacturingID,
		CuttingID:       cuttingID,
		ProductName:     "Kids T-Shirt",
		Size:            size,
		Quantity:        quantity,
		Status:          models.OrderStatusPending,
	}
}

func TestCreateWithReservationDrawsDownBreakdown(t *testing.T) {
	db := newTestDB(t)
	repo := NewManufacturingOrderRepository(db)
	ctx := context.Background()

	record := seedCuttingRecord(t, db, "CUT0001", models.SizeM, 10)

	err := repo.CreateWithReservation(ctx, record.ID, newOrder("CUT0001", "MFG0001", models.SizeM, 4))
	require.NoError(t, err)

	var breakdown models.SizeBreakdown
	require.NoError(t, db.Where("cutting_record_id = ?", record.ID).First(&breakdown).Error)
	require.Equal(t, 6, breakdown.Quantity)
	require.Equal(t, 10, breakdown.InitialQuantity)
}

func TestCreateWithReservationInsufficientLeavesNothing(t *testing.T) {
	db := newTestDB(t)
	repo := NewManufacturingOrderRepository(db)
	ctx := context.Background()

	record := seedCuttingRecord(t, db, "CUT0001", models.SizeM, 5)

	err := repo.CreateWithReservation(ctx, record.ID, newOrder("CUT0001", "MFG0001", models.SizeM, 8))
	require.ErrorIs(t, err, ErrInsufficientQuantity)

	// Neither the order nor a partial decrement may survive the rollback
	var count int64
	require.NoError(t, db.Model(&models.ManufacturingOrder{}).Count(&count).Error)
	require.Zero(t, count)

	var breakdown models.SizeBreakdown
	require.NoError(t, db.Where("cutting_record_id = ?", record.ID).First(&breakdown).Error)
	require.Equal(t, 5, breakdown.Quantity)
}

func TestCreateWithReservationRejectsUnknownSize(t *testing.T) {
	db := newTestDB(t)
	repo := NewManufacturingOrderRepository(db)

	record := seedCuttingRecord(t, db, "CUT0001", models.SizeM, 5)

	err := repo.CreateWithReservation(context.Background(), record.ID, newOrder("CUT0001", "MFG0001", models.SizeL, 1))
	require.ErrorIs(t, err, ErrInsufficientQuantity)
}

func TestFindCompletedWithoutQR(t *testing.T) {
	db := newTestDB(t)
	repo := NewManufacturingOrderRepository(db)
	ctx := context.Background()

	record := seedCuttingRecord(t, db, "CUT0001", models.SizeM, 20)

	missing := newOrder("CUT0001", "MFG0001", models.SizeM, 5)
	missing.Status = models.OrderStatusCompleted
	require.NoError(t, repo.CreateWithReservation(ctx, record.ID, missing))

	pending := newOrder("CUT0001", "MFG0002", models.SizeM, 5)
	require.NoError(t, repo.CreateWithReservation(ctx, record.ID, pending))

	covered := newOrder("CUT0001", "MFG0003", models.SizeM, 5)
	covered.Status = models.OrderStatusCompleted
	require.NoError(t, repo.CreateWithReservation(ctx, record.ID, covered))
	require.NoError(t, db.Create(&models.QRProduct{
		ID:              uuid.New(),
		ManufacturingID: "MFG0003",
		CuttingID:       "CUT0001",
		ProductName:     "Kids T-Shirt",
		Size:            models.SizeM,
		Quantity:        5,
	}).Error)

	orders, err := repo.FindCompletedWithoutQR(ctx, 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, "MFG0001", orders[0].ManufacturingID)
}

// An order whose QR product was deliberately deleted is not a gap to
// close: the soft-deleted record still counts as coverage, so the
// reconciliation sweep must leave the order alone.
func TestFindCompletedWithoutQRSkipsDeletedQR(t *testing.T) {
	db := newTestDB(t)
	orderRepo := NewManufacturingOrderRepository(db)
	qrRepo := NewQRProductRepository(db)
	ctx := context.Background()

	record := seedCuttingRecord(t, db, "CUT0001", models.SizeM, 20)

	order := newOrder("CUT0001", "MFG0001", models.SizeM, 5)
	order.Status = models.OrderStatusCompleted
	require.NoError(t, orderRepo.CreateWithReservation(ctx, record.ID, order))
	require.NoError(t, db.Create(&models.QRProduct{
		ID:              uuid.New(),
		ManufacturingID: "MFG0001",
		CuttingID:       "CUT0001",
		ProductName:     "Kids T-Shirt",
		Size:            models.SizeM,
		Quantity:        5,
	}).Error)

	require.NoError(t, qrRepo.DeleteByManufacturingID(ctx, "MFG0001"))

	orders, err := orderRepo.FindCompletedWithoutQR(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestDeletePermanentRemovesRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewManufacturingOrderRepository(db)
	ctx := context.Background()

	record := seedCuttingRecord(t, db, "CUT0001", models.SizeM, 10)
	require.NoError(t, repo.CreateWithReservation(ctx, record.ID, newOrder("CUT0001", "MFG0001", models.SizeM, 2)))

	require.NoError(t, repo.Delete(ctx, "MFG0001", false))

	// Soft-deleted IDs are still reserved
	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	require.Contains(t, ids, "MFG0001")

	require.NoError(t, repo.Delete(ctx, "MFG0001", true))

	var count int64
	require.NoError(t, db.Unscoped().Model(&models.ManufacturingOrder{}).Count(&count).Error)
	require.Zero(t, count)
}
