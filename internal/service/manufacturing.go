package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/westo/services/garment/internal/cache"
	"example.com/westo/services/garment/internal/messaging"
	"example.com/westo/services/garment/internal/metrics"
	"example.com/westo/services/garment/internal/models"
	"example.com/westo/services/garment/internal/repository"
	"example.com/westo/services/garment/internal/tracing"
)

// ManufacturingService handles the manufacturing order workflow: order
// creation against a cutting record's size ledger, status transitions
// and the QR product records completion produces
type ManufacturingService struct {
	orderRepo   repository.ManufacturingOrderRepository
	cuttingRepo repository.CuttingRecordRepository
	qrRepo      repository.QRProductRepository
	publisher   messaging.Publisher
	cache       *cache.RedisCache
	metrics     *metrics.Metrics
	tracer      tracing.Tracer
}

// NewManufacturingService creates a new manufacturing service
func NewManufacturingService(
	orderRepo repository.ManufacturingOrderRepository,
	cuttingRepo repository.CuttingRecordRepository,
	qrRepo repository.QRProductRepository,
	publisher messaging.Publisher,
	redisCache *cache.RedisCache,
	metricsCollector *metrics.Metrics,
	tracer tracing.Tracer,
) *ManufacturingService {
	return &ManufacturingService{
		orderRepo:   orderRepo,
		cuttingRepo: cuttingRepo,
		qrRepo:      qrRepo,
		publisher:   publisher,
		cache:       redisCache,
		metrics:     metricsCollector,
		tracer:      tracer,
	}
}

// CreateOrderInput carries the fields for a new manufacturing order
type CreateOrderInput struct {
	ManufacturingID string      `json:"manufacturing_id"`
	CuttingID       string      `json:"cutting_id"`
	Size            models.Size `json:"size"`
	Quantity        int         `json:"quantity"`
	TailorName      string      `json:"tailor_name"`
}

// CreateOrder creates a manufacturing order by drawing down the size
// breakdown entry of the referenced cutting record. The decrement and
// the order insert commit together, so a rejected reservation leaves
// the ledger unchanged.
func (s *ManufacturingService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.ManufacturingOrder, error) {
	txn := s.tracer.StartTransaction("create-manufacturing-order")
	defer s.tracer.EndTransaction(txn)

	if input.Quantity < 1 {
		return nil, newValidationError("quantity must be at least 1")
	}
	if !input.Size.Valid() {
		return nil, newValidationError("unknown size %q", input.Size)
	}

	record, err := s.cuttingRepo.GetByCuttingID(ctx, input.CuttingID)
	if err != nil {
		s.tracer.RecordError(txn, err)
		return nil, fromRepoError(err)
	}

	manufacturingID := input.ManufacturingID
	if manufacturingID == "" {
		manufacturingID = allocateID(ctx, PrefixManufacturing, s.orderRepo.ListIDs)
	}

	order := &models.ManufacturingOrder{
		ID:              uuid.New(),
		ManufacturingID: manufacturingID,
		CuttingID:       record.CuttingID,
		ProductName:     record.ProductName,
		FabricColor:     record.FabricColor,
		Size:            input.Size,
		Quantity:        input.Quantity,
		TailorName:      input.TailorName,
		Status:          models.OrderStatusPending,
		AssignedDate:    time.Now(),
	}

	err = s.orderRepo.CreateWithReservation(ctx, record.ID, order)
	if err != nil {
		s.tracer.RecordError(txn, err)
		if errors.Is(err, repository.ErrInsufficientQuantity) {
			s.metrics.IncrementCounter(metrics.CounterReservationRejected)
			return nil, newQuantityError(input.Size, input.Quantity, s.availableFor(record, input.Size))
		}
		return nil, errors.Wrap(fromRepoError(err), "failed to create manufacturing order")
	}

	s.metrics.IncrementCounter(metrics.CounterOrdersCreated)
	s.invalidateAvailability(ctx, record.CuttingID)

	log.Info().
		Str("manufacturing_id", order.ManufacturingID).
		Str("cutting_id", order.CuttingID).
		Str("size", string(order.Size)).
		Int("quantity", order.Quantity).
		Msg("Manufacturing order created")

	return order, nil
}

// availableFor reads the remaining quantity for a size from a cutting
// record fetched before the reservation attempt
func (s *ManufacturingService) availableFor(record *models.CuttingRecord, size models.Size) int {
	for _, entry := range record.SizeBreakdowns {
		if entry.Size == size {
			return entry.Quantity
		}
	}
	return 0
}

// GetOrder gets an order by its business identifier
func (s *ManufacturingService) GetOrder(ctx context.Context, manufacturingID string) (*models.ManufacturingOrder, error) {
	order, err := s.orderRepo.GetByManufacturingID(ctx, manufacturingID)
	if err != nil {
		return nil, fromRepoError(err)
	}
	return order, nil
}

// ListOrders returns all manufacturing orders
func (s *ManufacturingService) ListOrders(ctx context.Context) ([]models.ManufacturingOrder, error) {
	return s.orderRepo.List(ctx)
}

// ListOrdersByCutting returns the orders placed against a cutting record
func (s *ManufacturingService) ListOrdersByCutting(ctx context.Context, cuttingID string) ([]models.ManufacturingOrder, error) {
	return s.orderRepo.ListByCuttingID(ctx, cuttingID)
}

// UpdateStatus drives the order workflow. Reaching Completed creates
// the QR product record; QR Deleted removes it. The status update and
// the QR write are separate writes: a QR failure after a committed
// status change is surfaced to the caller, and the reconciliation job
// later creates the missing record.
func (s *ManufacturingService) UpdateStatus(ctx context.Context, manufacturingID string, status models.OrderStatus) (*models.ManufacturingOrder, error) {
	txn := s.tracer.StartTransaction("update-order-status")
	defer s.tracer.EndTransaction(txn)
	s.tracer.AddAttribute(txn, "manufacturing_id", manufacturingID)
	s.tracer.AddAttribute(txn, "status", string(status))

	if !status.Valid() {
		return nil, newValidationError("unknown status %q", status)
	}

	order, err := s.orderRepo.GetByManufacturingID(ctx, manufacturingID)
	if err != nil {
		s.tracer.RecordError(txn, err)
		return nil, fromRepoError(err)
	}

	if err := s.orderRepo.UpdateStatus(ctx, manufacturingID, status); err != nil {
		s.tracer.RecordError(txn, err)
		return nil, errors.Wrap(fromRepoError(err), "failed to update order status")
	}
	order.Status = status

	switch status {
	case models.OrderStatusCompleted:
		s.metrics.IncrementCounter(metrics.CounterOrdersCompleted)
		if err := s.createQRProduct(ctx, order); err != nil {
			// The status change is retained; the reconciliation job
			// will reattempt the QR record.
			s.tracer.RecordError(txn, err)
			return order, errors.Wrap(err, "order completed but QR product creation failed")
		}
		s.publishCompleted(ctx, order)

	case models.OrderStatusQRDeleted:
		if err := s.qrRepo.DeleteByManufacturingID(ctx, manufacturingID); err != nil &&
			!errors.Is(err, repository.ErrNotFound) {
			s.tracer.RecordError(txn, err)
			return order, errors.Wrap(err, "failed to delete QR product")
		}
	}

	log.Info().
		Str("manufacturing_id", manufacturingID).
		Str("status", string(status)).
		Msg("Order status updated")

	return order, nil
}

// createQRProduct synthesizes the QR product record for a completed
// order
func (s *ManufacturingService) createQRProduct(ctx context.Context, order *models.ManufacturingOrder) error {
	product := &models.QRProduct{
		ID:              uuid.New(),
		ManufacturingID: order.ManufacturingID,
		CuttingID:       order.CuttingID,
		ProductName:     order.ProductName,
		Color:           order.FabricColor,
		Size:            order.Size,
		Quantity:        order.Quantity,
		TailorName:      order.TailorName,
		GeneratedDate:   time.Now(),
	}

	if err := s.qrRepo.Create(ctx, product); err != nil {
		return err
	}

	s.metrics.IncrementCounter(metrics.CounterQRProductsCreated)
	return nil
}

// publishCompleted notifies downstream consumers of the completed
// order. Publishing is best-effort; the worker's reconciliation pass
// covers missed events.
func (s *ManufacturingService) publishCompleted(ctx context.Context, order *models.ManufacturingOrder) {
	if err := s.publisher.Publish(ctx, messaging.NewOrderCompletedEvent(order)); err != nil {
		log.Warn().Err(err).
			Str("manufacturing_id", order.ManufacturingID).
			Msg("Failed to publish order completed event")
	}
}

// DeleteOrder removes an order. A soft delete only hides the order from
// listings; a permanent delete also removes its QR products.
func (s *ManufacturingService) DeleteOrder(ctx context.Context, manufacturingID string, permanent bool) error {
	order, err := s.orderRepo.GetByManufacturingID(ctx, manufacturingID)
	if err != nil {
		return fromRepoError(err)
	}

	if permanent {
		if err := s.qrRepo.DeleteByManufacturingID(ctx, manufacturingID); err != nil &&
			!errors.Is(err, repository.ErrNotFound) {
			return errors.Wrap(err, "failed to delete associated QR products")
		}
	}

	if err := s.orderRepo.Delete(ctx, manufacturingID, permanent); err != nil {
		return fromRepoError(err)
	}

	s.invalidateAvailability(ctx, order.CuttingID)
	return nil
}

// ReconcileQRProducts creates QR product records for completed orders
// that are missing one, closing the gap left when the QR write failed
// after a committed status change
func (s *ManufacturingService) ReconcileQRProducts(ctx context.Context, batchSize int) error {
	txn := s.tracer.StartTransaction("reconcile-qr-products")
	defer s.tracer.EndTransaction(txn)

	orders, err := s.orderRepo.FindCompletedWithoutQR(ctx, batchSize)
	if err != nil {
		s.tracer.RecordError(txn, err)
		return errors.Wrap(err, "failed to find completed orders without QR products")
	}

	if len(orders) == 0 {
		return nil
	}

	log.Info().Int("count", len(orders)).Msg("Reconciling completed orders without QR products")

	for i := range orders {
		order := &orders[i]
		if err := s.createQRProduct(ctx, order); err != nil {
			log.Error().Err(err).
				Str("manufacturing_id", order.ManufacturingID).
				Msg("Failed to reconcile QR product")
			s.tracer.RecordError(txn, err)
			continue
		}
		s.metrics.IncrementCounter(metrics.CounterQRReconciled)
		s.publishCompleted(ctx, order)
	}

	return nil
}

// invalidateAvailability drops the cached size availability for a
// cutting record
func (s *ManufacturingService) invalidateAvailability(ctx context.Context, cuttingID string) {
	if err := s.cache.Delete(ctx, cache.GetCuttingInventoryKey(cuttingID)); err != nil {
		log.Debug().Err(err).Str("cutting_id", cuttingID).Msg("Failed to invalidate availability cache")
	}
}
