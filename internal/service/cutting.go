package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/westo/services/garment/internal/cache"
	"example.com/westo/services/garment/internal/models"
	"example.com/westo/services/garment/internal/repository"
)

// CuttingService handles cutting record business logic, including the
// per-size quantity ledger that manufacturing orders draw from
type CuttingService struct {
	cuttingRepo repository.CuttingRecordRepository
	cache       *cache.RedisCache
}

// NewCuttingService creates a new cutting service
func NewCuttingService(
	cuttingRepo repository.CuttingRecordRepository,
	redisCache *cache.RedisCache,
) *CuttingService {
	return &CuttingService{
		cuttingRepo: cuttingRepo,
		cache:       redisCache,
	}
}

// SizeQuantityInput is one size entry of a new cutting record
type SizeQuantityInput struct {
	Size     models.Size `json:"size"`
	Quantity int         `json:"quantity"`
}

// CreateCuttingRecordInput carries the fields for a new cutting record
type CreateCuttingRecordInput struct {
	FabricID      string              `json:"fabric_id"`
	ProductName   string              `json:"product_name"`
	FabricColor   string              `json:"fabric_color"`
	PiecesCount   int                 `json:"pieces_count"`
	FabricUsed    float64             `json:"fabric_used"`
	CuttingMaster string              `json:"cutting_master"`
	SizeBreakdown []SizeQuantityInput `json:"size_breakdown"`
}

// CreateCuttingRecord allocates the next CUT identifier and creates a
// cutting record with its full per-size quantities
func (s *CuttingService) CreateCuttingRecord(ctx context.Context, input CreateCuttingRecordInput) (*models.CuttingRecord, error) {
	if input.PiecesCount < 1 {
		return nil, newValidationError("pieces count must be at least 1")
	}
	if len(input.SizeBreakdown) == 0 {
		return nil, newValidationError("size breakdown must not be empty")
	}

	seen := make(map[models.Size]bool, len(input.SizeBreakdown))
	total := 0
	for _, entry := range input.SizeBreakdown {
		if !entry.Size.Valid() {
			return nil, newValidationError("unknown size %q", entry.Size)
		}
		if seen[entry.Size] {
			return nil, newValidationError("duplicate size %s in breakdown", entry.Size)
		}
		if entry.Quantity < 0 {
			return nil, newValidationError("quantity for size %s must not be negative", entry.Size)
		}
		seen[entry.Size] = true
		total += entry.Quantity
	}
	if total > input.PiecesCount {
		return nil, newValidationError(
			"size breakdown total %d exceeds pieces count %d", total, input.PiecesCount)
	}

	cuttingID := allocateID(ctx, PrefixCutting, s.cuttingRepo.ListIDs)

	record := &models.CuttingRecord{
		ID:            uuid.New(),
		CuttingID:     cuttingID,
		FabricID:      input.FabricID,
		ProductName:   input.ProductName,
		FabricColor:   input.FabricColor,
		PiecesCount:   input.PiecesCount,
		FabricUsed:    input.FabricUsed,
		CuttingDate:   time.Now(),
		CuttingMaster: input.CuttingMaster,
	}
	for _, entry := range input.SizeBreakdown {
		record.SizeBreakdowns = append(record.SizeBreakdowns, models.SizeBreakdown{
			ID:              uuid.New(),
			CuttingRecordID: record.ID,
			Size:            entry.Size,
			InitialQuantity: entry.Quantity,
			Quantity:        entry.Quantity,
		})
	}

	if err := s.cuttingRepo.Create(ctx, record); err != nil {
		return nil, errors.Wrap(fromRepoError(err), "failed to create cutting record")
	}

	log.Info().
		Str("cutting_id", record.CuttingID).
		Int("pieces", record.PiecesCount).
		Msg("Cutting record created")

	return record, nil
}

// GetCuttingRecord gets a cutting record by its business identifier
func (s *CuttingService) GetCuttingRecord(ctx context.Context, cuttingID string) (*models.CuttingRecord, error) {
	record, err := s.cuttingRepo.GetByCuttingID(ctx, cuttingID)
	if err != nil {
		return nil, fromRepoError(err)
	}
	return record, nil
}

// ListCuttingRecords returns all cutting records
func (s *CuttingService) ListCuttingRecords(ctx context.Context) ([]models.CuttingRecord, error) {
	return s.cuttingRepo.List(ctx)
}

// DeleteCuttingRecord removes a cutting record. Remaining quantities do
// not block deletion; removal is an explicit user action.
func (s *CuttingService) DeleteCuttingRecord(ctx context.Context, cuttingID string) error {
	if err := s.cuttingRepo.Delete(ctx, cuttingID); err != nil {
		return fromRepoError(err)
	}
	s.invalidateAvailability(ctx, cuttingID)
	return nil
}

// SizeAvailability is the remaining quantity of one size for a cutting
// record
type SizeAvailability struct {
	Size      models.Size `json:"size"`
	Initial   int         `json:"initial"`
	Allocated int         `json:"allocated"`
	Available int         `json:"available"`
}

// AvailableSizes returns the remaining quantity per size for a cutting
// record, read straight off the ledger. Consumption is permanent, so
// the remaining count is authoritative regardless of what later
// happened to the orders that drew it down; Allocated is the
// difference from the initial quantity.
func (s *CuttingService) AvailableSizes(ctx context.Context, cuttingID string) ([]SizeAvailability, error) {
	cacheKey := cache.GetCuttingInventoryKey(cuttingID)
	var cached []SizeAvailability
	if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	record, err := s.cuttingRepo.GetByCuttingID(ctx, cuttingID)
	if err != nil {
		return nil, fromRepoError(err)
	}

	availability := make([]SizeAvailability, 0, len(record.SizeBreakdowns))
	for _, entry := range record.SizeBreakdowns {
		availability = append(availability, SizeAvailability{
			Size:      entry.Size,
			Initial:   entry.InitialQuantity,
			Allocated: entry.InitialQuantity - entry.Quantity,
			Available: entry.Quantity,
		})
	}

	if err := s.cache.Set(ctx, cacheKey, availability, 30*time.Second); err != nil {
		log.Debug().Err(err).Str("cutting_id", cuttingID).Msg("Failed to cache availability")
	}

	return availability, nil
}

// invalidateAvailability drops the cached availability for a cutting
// record after a write that changes it
func (s *CuttingService) invalidateAvailability(ctx context.Context, cuttingID string) {
	if err := s.cache.Delete(ctx, cache.GetCuttingInventoryKey(cuttingID)); err != nil {
		log.Debug().Err(err).Str("cutting_id", cuttingID).Msg("Failed to invalidate availability cache")
	}
}
