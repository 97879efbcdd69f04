package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"example.com/westo/services/garment/internal/models"
)

func TestAddStockReturnsUpdatedLevel(t *testing.T) {
	db := newTestDB(t)
	repo := NewFabricRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Fabric{
		ID:          uuid.New(),
		FabricID:    "FAB0001",
		Name:        "Cotton Jersey",
		StockMeters: 50,
	}).Error)

	newStock, err := repo.AddStock(ctx, "FAB0001", 25)
	require.NoError(t, err)
	require.Equal(t, 75.0, newStock)

	newStock, err = repo.RemoveStock(ctx, "FAB0001", 30)
	require.NoError(t, err)
	require.Equal(t, 45.0, newStock)
}

func TestAddStockUnknownFabric(t *testing.T) {
	db := newTestDB(t)
	repo := NewFabricRepository(db)

	_, err := repo.AddStock(context.Background(), "FAB0404", 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveStockInsufficient(t *testing.T) {
	db := newTestDB(t)
	repo := NewFabricRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Fabric{
		ID:          uuid.New(),
		FabricID:    "FAB0001",
		Name:        "Linen",
		StockMeters: 10,
	}).Error)

	_, err := repo.RemoveStock(ctx, "FAB0001", 15)
	require.ErrorIs(t, err, ErrInsufficientQuantity)

	// The failed decrement must not have moved the stock
	var fabric models.Fabric
	require.NoError(t, db.Where("fabric_id = ?", "FAB0001").First(&fabric).Error)
	require.Equal(t, 10.0, fabric.StockMeters)
}
