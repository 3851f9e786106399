package repository

import (
	"context"

	"warehouse/internal/model"

	"gorm.io/gorm"
)

// ItemRepository defines data access for catalog items
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id uint) (*model.Item, error)
	ListActive(ctx context.Context) ([]model.Item, error)
	ListLowStock(ctx context.Context, limit int) ([]model.Item, error)
	ListActiveByIDs(ctx context.Context, ids []uint) ([]model.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *itemRepository) GetByID(ctx context.Context, id uint) (*model.Item, error) {
	var item model.Item
	if err := GetDB(ctx, r.db).Preload("Category").First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) ListActive(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := GetDB(ctx, r.db).Preload("Category").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListLowStock returns active items at or below their par level, most
// depleted first. A limit <= 0 disables the cap.
func (r *itemRepository) ListLowStock(ctx context.Context, limit int) ([]model.Item, error) {
	var items []model.Item
	query := GetDB(ctx, r.db).Preload("Category").
		Where("is_active = ? AND current_stock <= par_level", true).
		Order("current_stock ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) ListActiveByIDs(ctx context.Context, ids []uint) ([]model.Item, error) {
	var items []model.Item
	if err := GetDB(ctx, r.db).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CategoryRepository defines data access for item categories
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// DepartmentRepository defines data access for departments
type DepartmentRepository interface {
	List(ctx context.Context) ([]model.Department, error)
	GetByName(ctx context.Context, name string) (*model.Department, error)
}

type departmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) List(ctx context.Context) ([]model.Department, error) {
	var departments []model.Department
	if err := GetDB(ctx, r.db).Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (*model.Department, error) {
	var department model.Department
	if err := GetDB(ctx, r.db).First(&department, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &department, nil
}
