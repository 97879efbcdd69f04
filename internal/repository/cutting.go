package repository

import (
	"context"

	"gorm.io/gorm"

	"example.com/westo/services/garment/internal/models"
)

// CuttingRecordRepository defines access to cutting record data
type CuttingRecordRepository interface {
	Create(ctx context.Context, record *models.CuttingRecord) error
	GetByCuttingID(ctx context.Context, cuttingID string) (*models.CuttingRecord, error)
	List(ctx context.Context) ([]models.CuttingRecord, error)
	ListIDs(ctx context.Context) ([]string, error)
	Update(ctx context.Context, record *models.CuttingRecord) error
	Delete(ctx context.Context, cuttingID string) error
}

// cuttingRecordRepository implements CuttingRecordRepository
type cuttingRecordRepository struct {
	db *gorm.DB
}

// NewCuttingRecordRepository creates a new cutting record repository
func NewCuttingRecordRepository(db *gorm.DB) CuttingRecordRepository {
	return &cuttingRecordRepository{db: db}
}

// Create creates a cutting record along with its size breakdown rows
func (r *cuttingRecordRepository) Create(ctx context.Context, record *models.CuttingRecord) error {
	return translate(r.db.WithContext(ctx).Create(record).Error)
}

// GetByCuttingID gets a cutting record by its business identifier
func (r *cuttingRecordRepository) GetByCuttingID(ctx context.Context, cuttingID string) (*models.CuttingRecord, error) {
	var record models.CuttingRecord
	err := r.db.WithContext(ctx).
		Preload("SizeBreakdowns").
		Where("cutting_id = ?", cuttingID).
		First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

// List returns all cutting records with their size breakdowns
func (r *cuttingRecordRepository) List(ctx context.Context) ([]models.CuttingRecord, error) {
	var records []models.CuttingRecord
	err := r.db.WithContext(ctx).
		Preload("SizeBreakdowns").
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ListIDs returns the business identifiers of all cutting records,
// including soft-deleted ones so their numbers are never reissued.
func (r *cuttingRecordRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.CuttingRecord{}).
		Unscoped().
		Pluck("cutting_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Update saves changes to a cutting record
func (r *cuttingRecordRepository) Update(ctx context.Context, record *models.CuttingRecord) error {
	return translate(r.db.WithContext(ctx).Save(record).Error)
}

// Delete soft-deletes a cutting record by its business identifier
func (r *cuttingRecordRepository) Delete(ctx context.Context, cuttingID string) error {
	result := r.db.WithContext(ctx).
		Where("cutting_id = ?", cuttingID).
		Delete(&models.CuttingRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
