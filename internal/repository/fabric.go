package repository

import (
	"context"

	"gorm.io/gorm"

	"example.com/westo/services/garment/internal/models"
)

// FabricRepository defines access to fabric stock data
type FabricRepository interface {
	Create(ctx context.Context, fabric *models.Fabric) error
	GetByFabricID(ctx context.Context, fabricID string) (*models.Fabric, error)
	List(ctx context.Context) ([]models.Fabric, error)
	ListIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, fabric *models.Fabric) error
	Delete(ctx context.Context, fabricID string) error
	AddStock(ctx context.Context, fabricID string, meters float64) (float64, error)
	RemoveStock(ctx context.Context, fabricID string, meters float64) (float64, error)
	CreateTransaction(ctx context.Context, txn *models.StockTransaction) error
	ListTransactions(ctx context.Context, fabricID string) ([]models.StockTransaction, error)
}

// fabricRepository implements FabricRepository
type fabricRepository struct {
	db *gorm.DB
}

// NewFabricRepository creates a new fabric repository
func NewFabricRepository(db *gorm.DB) FabricRepository {
	return &fabricRepository{db: db}
}

// Create creates a fabric
func (r *fabricRepository) Create(ctx context.Context, fabric *models.Fabric) error {
	return translate(r.db.WithContext(ctx).Create(fabric).Error)
}

// GetByFabricID gets a fabric by its business identifier
func (r *fabricRepository) GetByFabricID(ctx context.Context, fabricID string) (*models.Fabric, error) {
	var fabric models.Fabric
	err := r.db.WithContext(ctx).
		Where("fabric_id = ?", fabricID).
		First(&fabric).Error
	if err != nil {
		return nil, translate(err)
	}
	return &fabric, nil
}

// List returns all fabrics, newest first
func (r *fabricRepository) List(ctx context.Context) ([]models.Fabric, error) {
	var fabrics []models.Fabric
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&fabrics).Error
	if err != nil {
		return nil, err
	}
	return fabrics, nil
}

// ListIDs returns the business identifiers of all fabrics, including
// soft-deleted ones so their numbers are never reissued
func (r *fabricRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Fabric{}).
		Unscoped().
		Pluck("fabric_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Update saves changes to a fabric
func (r *fabricRepository) Update(ctx context.Context, fabric *models.Fabric) error {
	return translate(r.db.WithContext(ctx).Save(fabric).Error)
}

// Delete soft-deletes a fabric by its business identifier
func (r *fabricRepository) Delete(ctx context.Context, fabricID string) error {
	result := r.db.WithContext(ctx).
		Where("fabric_id = ?", fabricID).
		Delete(&models.Fabric{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddStock increments a fabric's stock and returns the resulting
// level. The update and the read-back share a transaction so the
// returned value reflects this movement exactly, even under concurrent
// transactions.
func (r *fabricRepository) AddStock(ctx context.Context, fabricID string, meters float64) (float64, error) {
	var newStock float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Fabric{}).
			Where("fabric_id = ?", fabricID).
			Update("stock_meters", gorm.Expr("stock_meters + ?", meters))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Fabric{}).
			Where("fabric_id = ?", fabricID).
			Select("stock_meters").
			Take(&newStock).Error
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

// RemoveStock decrements a fabric's stock and returns the resulting
// level. The decrement is conditional on the stock covering the
// request, the same guard the size breakdown ledger uses, so stock can
// never go negative.
func (r *fabricRepository) RemoveStock(ctx context.Context, fabricID string, meters float64) (float64, error) {
	var newStock float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Fabric{}).
			Where("fabric_id = ? AND stock_meters >= ?", fabricID, meters).
			Update("stock_meters", gorm.Expr("stock_meters - ?", meters))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientQuantity
		}
		return tx.Model(&models.Fabric{}).
			Where("fabric_id = ?", fabricID).
			Select("stock_meters").
			Take(&newStock).Error
	})
	if err != nil {
		return 0, err
	}
	return newStock, nil
}

// CreateTransaction records a stock movement
func (r *fabricRepository) CreateTransaction(ctx context.Context, txn *models.StockTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

// ListTransactions returns the stock movements for a fabric, newest first
func (r *fabricRepository) ListTransactions(ctx context.Context, fabricID string) ([]models.StockTransaction, error) {
	var txns []models.StockTransaction
	err := r.db.WithContext(ctx).
		Where("fabric_id = ?", fabricID).
		Order("created_at DESC").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}
