package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"example.com/westo/services/garment/internal/models"
	"example.com/westo/services/garment/internal/repository"
	"example.com/westo/services/garment/internal/search"
)

// QRProductService handles QR product records, both the ones generated
// from completed manufacturing orders and manual entries
type QRProductService struct {
	qrRepo  repository.QRProductRepository
	elastic *search.ElasticClient
}

// NewQRProductService creates a new QR product service
func NewQRProductService(qrRepo repository.QRProductRepository, elastic *search.ElasticClient) *QRProductService {
	return &QRProductService{qrRepo: qrRepo, elastic: elastic}
}

// CreateManualEntryInput carries the fields for a hand-entered QR
// product
type CreateManualEntryInput struct {
	ProductName string      `json:"product_name"`
	Color       string      `json:"color"`
	Size        models.Size `json:"size"`
	Quantity    int         `json:"quantity"`
	TailorName  string      `json:"tailor_name"`
}

// CreateManualEntry creates a QR product without a manufacturing
// order. Manual entries get the next MAN identifier and carry the
// MANUAL cutting ID marker.
func (s *QRProductService) CreateManualEntry(ctx context.Context, input CreateManualEntryInput) (*models.QRProduct, error) {
	if input.ProductName == "" {
		return nil, newValidationError("product name is required")
	}
	if input.Quantity < 1 {
		return nil, newValidationError("quantity must be at least 1")
	}
	if !input.Size.Valid() {
		return nil, newValidationError("unknown size %q", input.Size)
	}

	product := &models.QRProduct{
		ID:              uuid.New(),
		ManufacturingID: allocateID(ctx, PrefixManualQR, s.qrRepo.ListManualIDs),
		CuttingID:       models.CuttingIDManual,
		ProductName:     input.ProductName,
		Color:           input.Color,
		Size:            input.Size,
		Quantity:        input.Quantity,
		TailorName:      input.TailorName,
		GeneratedDate:   time.Now(),
	}

	if err := s.qrRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(fromRepoError(err), "failed to create manual QR entry")
	}

	s.index(ctx, product)

	log.Info().
		Str("manufacturing_id", product.ManufacturingID).
		Msg("Manual QR entry created")

	return product, nil
}

// GetByManufacturingID gets a QR product by its order identifier
func (s *QRProductService) GetByManufacturingID(ctx context.Context, manufacturingID string) (*models.QRProduct, error) {
	product, err := s.qrRepo.GetByManufacturingID(ctx, manufacturingID)
	if err != nil {
		return nil, fromRepoError(err)
	}
	return product, nil
}

// List returns all QR products
func (s *QRProductService) List(ctx context.Context) ([]models.QRProduct, error) {
	return s.qrRepo.List(ctx)
}

// Delete removes a QR product. The originating cutting record's size
// breakdown is not replenished; consumption is permanent.
func (s *QRProductService) Delete(ctx context.Context, manufacturingID string) error {
	product, err := s.qrRepo.GetByManufacturingID(ctx, manufacturingID)
	if err != nil {
		return fromRepoError(err)
	}

	if err := s.qrRepo.DeleteByManufacturingID(ctx, manufacturingID); err != nil {
		return fromRepoError(err)
	}

	if s.elastic != nil {
		if err := s.elastic.DeleteQRProduct(ctx, product.ID.String()); err != nil {
			log.Warn().Err(err).
				Str("manufacturing_id", manufacturingID).
				Msg("Failed to remove QR product from search index")
		}
	}

	return nil
}

// Search searches QR products by free text
func (s *QRProductService) Search(ctx context.Context, query string) ([]search.QRProductHit, error) {
	if query == "" {
		return nil, newValidationError("search query is required")
	}
	if s.elastic == nil {
		return nil, errors.Wrap(ErrDependency, "search is unavailable")
	}

	hits, err := s.elastic.SearchQRProducts(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "search failed")
	}
	return hits, nil
}

// Index writes a QR product into the search index. Used by the worker
// when consuming order completed events.
func (s *QRProductService) Index(ctx context.Context, manufacturingID string) error {
	product, err := s.qrRepo.GetByManufacturingID(ctx, manufacturingID)
	if err != nil {
		return fromRepoError(err)
	}
	if s.elastic == nil {
		return nil
	}
	return s.elastic.IndexQRProduct(ctx, product)
}

// index is the best-effort variant used on the write path
func (s *QRProductService) index(ctx context.Context, product *models.QRProduct) {
	if s.elastic == nil {
		return
	}
	if err := s.elastic.IndexQRProduct(ctx, product); err != nil {
		log.Warn().Err(err).
			Str("manufacturing_id", product.ManufacturingID).
			Msg("Failed to index QR product")
	}
}
