package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/westo/services/garment/internal/metrics"
	"example.com/westo/services/garment/internal/models"
	"example.com/westo/services/garment/internal/repository"
)

// FabricService handles fabric stock and stock transactions
type FabricService struct {
	fabricRepo repository.FabricRepository
	metrics    *metrics.Metrics
}

// NewFabricService creates a new fabric service
func NewFabricService(fabricRepo repository.FabricRepository, metricsCollector *metrics.Metrics) *FabricService {
	return &FabricService{fabricRepo: fabricRepo, metrics: metricsCollector}
}

// CreateFabricInput carries the fields for a new fabric
type CreateFabricInput struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Composition string  `json:"composition"`
	Supplier    string  `json:"supplier"`
	StockMeters float64 `json:"stock_meters"`
}

// CreateFabric allocates the next FAB identifier and creates a fabric
func (s *FabricService) CreateFabric(ctx context.Context, input CreateFabricInput) (*models.Fabric, error) {
	if input.Name == "" {
		return nil, newValidationError("fabric name is required")
	}
	if input.StockMeters < 0 {
		return nil, newValidationError("stock must not be negative")
	}

	fabric := &models.Fabric{
		ID:          uuid.New(),
		FabricID:    allocateID(ctx, PrefixFabric, s.fabricRepo.ListIDs),
		Name:        input.Name,
		Color:       input.Color,
		Composition: input.Composition,
		Supplier:    input.Supplier,
		StockMeters: input.StockMeters,
	}

	if err := s.fabricRepo.Create(ctx, fabric); err != nil {
		return nil, errors.Wrap(fromRepoError(err), "failed to create fabric")
	}

	log.Info().Str("fabric_id", fabric.FabricID).Msg("Fabric created")
	return fabric, nil
}

// GetFabric gets a fabric by its business identifier
func (s *FabricService) GetFabric(ctx context.Context, fabricID string) (*models.Fabric, error) {
	fabric, err := s.fabricRepo.GetByFabricID(ctx, fabricID)
	if err != nil {
		return nil, fromRepoError(err)
	}
	return fabric, nil
}

// ListFabrics returns all fabrics
func (s *FabricService) ListFabrics(ctx context.Context) ([]models.Fabric, error) {
	return s.fabricRepo.List(ctx)
}

// DeleteFabric soft-deletes a fabric
func (s *FabricService) DeleteFabric(ctx context.Context, fabricID string) error {
	return fromRepoError(s.fabricRepo.Delete(ctx, fabricID))
}

// RecordTransactionInput carries the fields for a stock movement
type RecordTransactionInput struct {
	FabricID    string  `json:"fabric_id"`
	Type        string  `json:"type"`
	Quantity    float64 `json:"quantity"`
	PerformedBy string  `json:"performed_by"`
	Remarks     string  `json:"remarks"`
}

// RecordTransaction applies a stock movement to a fabric and appends it
// to the transaction log. Outgoing stock uses a conditional decrement
// so the stock level can never go negative.
func (s *FabricService) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*models.StockTransaction, error) {
	if input.Quantity <= 0 {
		return nil, newValidationError("quantity must be positive")
	}
	if input.Type != models.StockIn && input.Type != models.StockOut {
		return nil, newValidationError("transaction type must be %s or %s", models.StockIn, models.StockOut)
	}

	fabric, err := s.fabricRepo.GetByFabricID(ctx, input.FabricID)
	if err != nil {
		return nil, fromRepoError(err)
	}

	var newStock float64
	switch input.Type {
	case models.StockIn:
		newStock, err = s.fabricRepo.AddStock(ctx, input.FabricID, input.Quantity)
	case models.StockOut:
		newStock, err = s.fabricRepo.RemoveStock(ctx, input.FabricID, input.Quantity)
	}
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientQuantity) {
			return nil, newValidationError(
				"insufficient stock for fabric %s: requested %.2f, available %.2f",
				input.FabricID, input.Quantity, fabric.StockMeters)
		}
		return nil, errors.Wrap(fromRepoError(err), "failed to adjust fabric stock")
	}

	// The previous level is reconstructed from the post-update value so
	// the log entry stays consistent with this movement even when other
	// transactions touched the fabric between the read and the update.
	previousStock := newStock - input.Quantity
	if input.Type == models.StockOut {
		previousStock = newStock + input.Quantity
	}

	txn := &models.StockTransaction{
		ID:            uuid.New(),
		FabricID:      input.FabricID,
		Type:          input.Type,
		Quantity:      input.Quantity,
		PreviousStock: previousStock,
		NewStock:      newStock,
		PerformedBy:   input.PerformedBy,
		Remarks:       input.Remarks,
	}

	if err := s.fabricRepo.CreateTransaction(ctx, txn); err != nil {
		// The stock level already moved; the log entry is reported
		// separately rather than rolled back.
		return nil, errors.Wrap(err, "stock adjusted but transaction log entry failed")
	}

	s.metrics.IncrementCounter(metrics.CounterStockTransactions)

	log.Info().
		Str("fabric_id", input.FabricID).
		Str("type", input.Type).
		Float64("quantity", input.Quantity).
		Msg("Stock transaction recorded")

	return txn, nil
}

// ListTransactions returns the stock movements for a fabric
func (s *FabricService) ListTransactions(ctx context.Context, fabricID string) ([]models.StockTransaction, error) {
	if _, err := s.fabricRepo.GetByFabricID(ctx, fabricID); err != nil {
		return nil, fromRepoError(err)
	}
	return s.fabricRepo.ListTransactions(ctx, fabricID)
}
