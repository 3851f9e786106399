package service

import (
	"context"

	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/pkg/apperror"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dashboardLowStockLimit = 10

// DashboardStats aggregates request counts and stock health for display
type DashboardStats struct {
	TotalRequests    int64           `json:"total_requests"`
	PendingRequests  int64           `json:"pending_requests"`
	ApprovedRequests int64           `json:"approved_requests"`
	RejectedRequests int64           `json:"rejected_requests"`
	TotalItems       int64           `json:"total_items"`
	InventoryValue   decimal.Decimal `json:"inventory_value"`
	LowStock         []ItemView      `json:"low_stock"`
}

type ReportService interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type reportService struct {
	db          *gorm.DB
	requestRepo repository.RequestRepository
	itemRepo    repository.ItemRepository
}

func NewReportService(db *gorm.DB, requestRepo repository.RequestRepository, itemRepo repository.ItemRepository) ReportService {
	return &reportService{db: db, requestRepo: requestRepo, itemRepo: itemRepo}
}

// Dashboard computes the aggregate counts in the store and attaches the
// most depleted items.
func (s *reportService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := DashboardStats{InventoryValue: decimal.Zero}

	total, err := s.requestRepo.Count(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	stats.TotalRequests = total

	counts, err := s.requestRepo.CountByStatus(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	stats.PendingRequests = counts[model.RequestStatusPending]
	stats.ApprovedRequests = counts[model.RequestStatusApproved]
	stats.RejectedRequests = counts[model.RequestStatusRejected]

	if err := s.db.WithContext(ctx).Model(&model.Item{}).
		Where("is_active = ?", true).
		Count(&stats.TotalItems).Error; err != nil {
		return nil, apperror.Internal(err)
	}

	// SUM is cast to text and parsed with decimal so the valuation keeps
	// exact cents on both postgres and sqlite.
	var valuation struct {
		Value string
	}
	if err := s.db.WithContext(ctx).Model(&model.Item{}).
		Select("COALESCE(CAST(SUM(current_stock * unit_cost) AS TEXT), '0') as value").
		Where("is_active = ?", true).
		Scan(&valuation).Error; err != nil {
		return nil, apperror.Internal(err)
	}
	if parsed, parseErr := decimal.NewFromString(valuation.Value); parseErr == nil {
		stats.InventoryValue = parsed
	}

	lowStock, err := s.itemRepo.ListLowStock(ctx, dashboardLowStockLimit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	stats.LowStock = toItemViews(lowStock)

	return &stats, nil
}
