package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"example.com/westo/services/garment/internal/cache"
	"example.com/westo/services/garment/internal/models"
	"example.com/westo/services/garment/internal/repository"
)

// lowStockThreshold marks fabrics that need reordering, in meters
const lowStockThreshold = 10.0

// DashboardService aggregates counts for the overview screen
type DashboardService struct {
	fabricRepo  repository.FabricRepository
	cuttingRepo repository.CuttingRecordRepository
	orderRepo   repository.ManufacturingOrderRepository
	qrRepo      repository.QRProductRepository
	cache       *cache.RedisCache
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	fabricRepo repository.FabricRepository,
	cuttingRepo repository.CuttingRecordRepository,
	orderRepo repository.ManufacturingOrderRepository,
	qrRepo repository.QRProductRepository,
	redisCache *cache.RedisCache,
) *DashboardService {
	return &DashboardService{
		fabricRepo:  fabricRepo,
		cuttingRepo: cuttingRepo,
		orderRepo:   orderRepo,
		qrRepo:      qrRepo,
		cache:       redisCache,
	}
}

// Summary holds the dashboard aggregates
type Summary struct {
	Fabrics         int `json:"fabrics"`
	LowStockFabrics int `json:"low_stock_fabrics"`
	CuttingRecords  int `json:"cutting_records"`
	RemainingPieces int `json:"remaining_pieces"`
	PendingOrders   int `json:"pending_orders"`
	CompletedOrders int `json:"completed_orders"`
	QRProducts      int `json:"qr_products"`
}

// GetSummary computes the dashboard aggregates, cached briefly since
// the overview screen polls
func (s *DashboardService) GetSummary(ctx context.Context) (*Summary, error) {
	var cached Summary
	if err := s.cache.Get(ctx, cache.DashboardSummaryKey, &cached); err == nil {
		return &cached, nil
	}

	fabrics, err := s.fabricRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.cuttingRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.qrRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Fabrics:        len(fabrics),
		CuttingRecords: len(records),
		QRProducts:     len(products),
	}
	for _, fabric := range fabrics {
		if fabric.StockMeters < lowStockThreshold {
			summary.LowStockFabrics++
		}
	}
	for _, record := range records {
		for _, entry := range record.SizeBreakdowns {
			summary.RemainingPieces += entry.Quantity
		}
	}
	for _, order := range orders {
		switch order.Status {
		case models.OrderStatusPending:
			summary.PendingOrders++
		case models.OrderStatusCompleted:
			summary.CompletedOrders++
		}
	}

	if err := s.cache.Set(ctx, cache.DashboardSummaryKey, summary, time.Minute); err != nil {
		log.Debug().Err(err).Msg("Failed to cache dashboard summary")
	}

	return summary, nil
}
