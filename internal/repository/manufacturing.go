package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"example.com/westo/services/garment/internal/models"
)

// ManufacturingOrderRepository defines access to manufacturing order data
type ManufacturingOrderRepository interface {
	CreateWithReservation(ctx context.Context, cuttingRecordID uuid.UUID, order *models.ManufacturingOrder) error
	GetByManufacturingID(ctx context.Context, manufacturingID string) (*models.ManufacturingOrder, error)
	List(ctx context.Context) ([]models.ManufacturingOrder, error)
	ListByCuttingID(ctx context.Context, cuttingID string) ([]models.ManufacturingOrder, error)
	ListIDs(ctx context.Context) ([]string, error)
	UpdateStatus(ctx context.Context, manufacturingID string, status models.OrderStatus) error
	FindCompletedWithoutQR(ctx context.Context, limit int) ([]models.ManufacturingOrder, error)
	Delete(ctx context.Context, manufacturingID string, permanent bool) error
}

// manufacturingOrderRepository implements ManufacturingOrderRepository
type manufacturingOrderRepository struct {
	db *gorm.DB
}

// NewManufacturingOrderRepository creates a new manufacturing order repository
func NewManufacturingOrderRepository(db *gorm.DB) ManufacturingOrderRepository {
	return &manufacturingOrderRepository{db: db}
}

// CreateWithReservation inserts a manufacturing order and draws down the
// matching size breakdown entry in one transaction. The decrement is
// conditional on the remaining quantity covering the request, so two
// concurrent orders cannot over-draw the same size. When no breakdown
// row matches, ErrInsufficientQuantity is returned and nothing is
// written; a duplicate manufacturing ID returns ErrDuplicateKey.
func (r *manufacturingOrderRepository) CreateWithReservation(ctx context.Context, cuttingRecordID uuid.UUID, order *models.ManufacturingOrder) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&models.SizeBreakdown{}).
			Where("cutting_record_id = ? AND size = ? AND quantity >= ?",
				cuttingRecordID, order.Size, order.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", order.Quantity))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientQuantity
		}

		return tx.Create(order).Error
	})
	return translate(err)
}

// GetByManufacturingID gets an order by its business identifier
func (r *manufacturingOrderRepository) GetByManufacturingID(ctx context.Context, manufacturingID string) (*models.ManufacturingOrder, error) {
	var order models.ManufacturingOrder
	err := r.db.WithContext(ctx).
		Where("manufacturing_id = ?", manufacturingID).
		First(&order).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// List returns all manufacturing orders, newest first
func (r *manufacturingOrderRepository) List(ctx context.Context) ([]models.ManufacturingOrder, error) {
	var orders []models.ManufacturingOrder
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListByCuttingID returns the orders placed against a cutting record
func (r *manufacturingOrderRepository) ListByCuttingID(ctx context.Context, cuttingID string) ([]models.ManufacturingOrder, error) {
	var orders []models.ManufacturingOrder
	err := r.db.WithContext(ctx).
		Where("cutting_id = ?", cuttingID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListIDs returns the business identifiers of all orders, including
// soft-deleted ones so their numbers are never reissued.
func (r *manufacturingOrderRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.ManufacturingOrder{}).
		Unscoped().
		Pluck("manufacturing_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UpdateStatus sets the status of an order
func (r *manufacturingOrderRepository) UpdateStatus(ctx context.Context, manufacturingID string, status models.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.ManufacturingOrder{}).
		Where("manufacturing_id = ?", manufacturingID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// FindCompletedWithoutQR returns completed orders that never had a QR
// product record. Used by the reconciliation job to close the gap left
// when the QR write failed after a successful status update. The
// subquery includes soft-deleted QR products: a deliberately deleted
// record must not be recreated, only an explicit re-complete makes a
// fresh one.
func (r *manufacturingOrderRepository) FindCompletedWithoutQR(ctx context.Context, limit int) ([]models.ManufacturingOrder, error) {
	var orders []models.ManufacturingOrder
	subquery := r.db.Unscoped().Model(&models.QRProduct{}).Select("manufacturing_id")
	err := r.db.WithContext(ctx).
		Where("status = ?", models.OrderStatusCompleted).
		Where("manufacturing_id NOT IN (?)", subquery).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Delete removes an order. A soft delete keeps the row for ID
// allocation and audit; a permanent delete drops it entirely.
func (r *manufacturingOrderRepository) Delete(ctx context.Context, manufacturingID string, permanent bool) error {
	tx := r.db.WithContext(ctx)
	if permanent {
		tx = tx.Unscoped()
	}
	result := tx.
		Where("manufacturing_id = ?", manufacturingID).
		Delete(&models.ManufacturingOrder{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
