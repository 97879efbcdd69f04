package repository

import (
	"context"

	"gorm.io/gorm"

	"example.com/westo/services/garment/internal/models"
)

// QRProductRepository defines access to QR product data
type QRProductRepository interface {
	Create(ctx context.Context, product *models.QRProduct) error
	GetByManufacturingID(ctx context.Context, manufacturingID string) (*models.QRProduct, error)
	List(ctx context.Context) ([]models.QRProduct, error)
	ListManualIDs(ctx context.Context) ([]string, error)
	ExistsForManufacturingID(ctx context.Context, manufacturingID string) (bool, error)
	DeleteByManufacturingID(ctx context.Context, manufacturingID string) error
}

// qrProductRepository implements QRProductRepository
type qrProductRepository struct {
	db *gorm.DB
}

// NewQRProductRepository creates a new QR product repository
func NewQRProductRepository(db *gorm.DB) QRProductRepository {
	return &qrProductRepository{db: db}
}

// Create creates a QR product record
func (r *qrProductRepository) Create(ctx context.Context, product *models.QRProduct) error {
	return translate(r.db.WithContext(ctx).Create(product).Error)
}

// GetByManufacturingID gets the most recent QR product for an order
func (r *qrProductRepository) GetByManufacturingID(ctx context.Context, manufacturingID string) (*models.QRProduct, error) {
	var product models.QRProduct
	err := r.db.WithContext(ctx).
		Where("manufacturing_id = ?", manufacturingID).
		Order("created_at DESC").
		First(&product).Error
	if err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// List returns all QR products, newest first
func (r *qrProductRepository) List(ctx context.Context) ([]models.QRProduct, error) {
	var products []models.QRProduct
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListManualIDs returns the manufacturing IDs of manually entered QR
// products, including soft-deleted ones so numbers are never reissued
func (r *qrProductRepository) ListManualIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.QRProduct{}).
		Unscoped().
		Where("cutting_id = ?", models.CuttingIDManual).
		Pluck("manufacturing_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ExistsForManufacturingID reports whether a QR product exists for an order
func (r *qrProductRepository) ExistsForManufacturingID(ctx context.Context, manufacturingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.QRProduct{}).
		Where("manufacturing_id = ?", manufacturingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByManufacturingID soft-deletes all QR products for an order
func (r *qrProductRepository) DeleteByManufacturingID(ctx context.Context, manufacturingID string) error {
	result := r.db.WithContext(ctx).
		Where("manufacturing_id = ?", manufacturingID).
		Delete(&models.QRProduct{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
