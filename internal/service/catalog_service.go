package service

import (
	"context"

	"warehouse/internal/model"
	"warehouse/internal/repository"
	"warehouse/pkg/apperror"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type ItemView struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	NameEn       string          `json:"name_en,omitempty"`
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Unit         string          `json:"unit"`
	ParLevel     int             `json:"par_level"`
	CurrentStock int             `json:"current_stock"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

type CreateItemInput struct {
	Name         string          `json:"name" binding:"required"`
	NameEn       string          `json:"name_en"`
	CategoryID   uint            `json:"category_id" binding:"required"`
	Unit         string          `json:"unit" binding:"required"`
	ParLevel     int             `json:"par_level" binding:"gte=0"`
	CurrentStock int             `json:"current_stock" binding:"gte=0"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
}

// --- Interface ---

// CatalogService covers the read model of items, categories and
// departments, plus item provisioning.
type CatalogService interface {
	ListItems(ctx context.Context) ([]ItemView, error)
	ListLowStockItems(ctx context.Context) ([]ItemView, error)
	CreateItem(ctx context.Context, actorID uint, ip string, in CreateItemInput) (*ItemView, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListDepartments(ctx context.Context) ([]model.Department, error)
}

type catalogService struct {
	itemRepo       repository.ItemRepository
	categoryRepo   repository.CategoryRepository
	departmentRepo repository.DepartmentRepository
	activityRepo   repository.ActivityRepository
	txManager      repository.TransactionManager
}

func NewCatalogService(
	itemRepo repository.ItemRepository,
	categoryRepo repository.CategoryRepository,
	departmentRepo repository.DepartmentRepository,
	activityRepo repository.ActivityRepository,
	txManager repository.TransactionManager,
) CatalogService {
	return &catalogService{
		itemRepo:       itemRepo,
		categoryRepo:   categoryRepo,
		departmentRepo: departmentRepo,
		activityRepo:   activityRepo,
		txManager:      txManager,
	}
}

func (s *catalogService) ListItems(ctx context.Context) ([]ItemView, error) {
	items, err := s.itemRepo.ListActive(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toItemViews(items), nil
}

// ListLowStockItems returns active items with current_stock <= par_level,
// most depleted first.
func (s *catalogService) ListLowStockItems(ctx context.Context) ([]ItemView, error) {
	items, err := s.itemRepo.ListLowStock(ctx, 0)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return toItemViews(items), nil
}

func (s *catalogService) CreateItem(ctx context.Context, actorID uint, ip string, in CreateItemInput) (*ItemView, error) {
	if in.UnitCost.IsNegative() {
		return nil, apperror.Validation("unit cost cannot be negative")
	}

	item := model.Item{
		Name:         in.Name,
		NameEn:       in.NameEn,
		CategoryID:   in.CategoryID,
		Unit:         in.Unit,
		ParLevel:     in.ParLevel,
		CurrentStock: in.CurrentStock,
		UnitCost:     in.UnitCost,
		IsActive:     true,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.itemRepo.Create(txCtx, &item); createErr != nil {
			return createErr
		}
		actorRef := actorID
		return s.activityRepo.Create(txCtx, &model.ActivityLog{
			UserID:    &actorRef,
			Action:    model.ActionCreateItem,
			IPAddress: ip,
		})
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	view := toItemView(item)
	return &view, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

func (s *catalogService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	departments, err := s.departmentRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return departments, nil
}

// --- Helpers ---

func toItemView(item model.Item) ItemView {
	view := ItemView{
		ID:           item.ID,
		Name:         item.Name,
		NameEn:       item.NameEn,
		CategoryID:   item.CategoryID,
		Unit:         item.Unit,
		ParLevel:     item.ParLevel,
		CurrentStock: item.CurrentStock,
		UnitCost:     item.UnitCost,
	}
	if item.Category != nil {
		view.CategoryName = item.Category.Name
	}
	return view
}

func toItemViews(items []model.Item) []ItemView {
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, toItemView(item))
	}
	return views
}
