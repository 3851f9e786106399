package repository

import (
	"context"
	"time"

	"warehouse/internal/model"

	"gorm.io/gorm"
)

// RequestFilter is the conjunctive predicate set for listing requests.
// Zero-valued fields are not applied; date bounds are inclusive.
type RequestFilter struct {
	Status       string
	DepartmentID *uint
	From         *time.Time
	To           *time.Time
	Page         int
	Limit        int
}

// RequestRepository defines data access for requests and their line items
type RequestRepository interface {
	// Create persists the request together with its line items. Callers
	// wanting all-or-nothing semantics run it inside the TransactionManager.
	Create(ctx context.Context, req *model.Request) error
	GetByID(ctx context.Context, id uint) (*model.Request, error)
	GetByIDWithRelations(ctx context.Context, id uint) (*model.Request, error)
	List(ctx context.Context, filter RequestFilter) ([]model.Request, int64, error)
	// MarkTransition performs the conditional status update
	// (UPDATE ... WHERE status = 'pending') and reports affected rows,
	// so concurrent approvals cannot overwrite a terminal status.
	MarkTransition(ctx context.Context, id uint, status string, approverID uint, at time.Time) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

func (r *requestRepository) Create(ctx context.Context, req *model.Request) error {
	return GetDB(ctx, r.db).Create(req).Error
}

func (r *requestRepository) GetByID(ctx context.Context, id uint) (*model.Request, error) {
	var req model.Request
	if err := GetDB(ctx, r.db).First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) GetByIDWithRelations(ctx context.Context, id uint) (*model.Request, error) {
	var req model.Request
	err := GetDB(ctx, r.db).
		Preload("Requester").
		Preload("Department").
		Preload("Approver").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("request_items.id ASC")
		}).
		Preload("Items.Item").
		First(&req, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) List(ctx context.Context, filter RequestFilter) ([]model.Request, int64, error) {
	db := GetDB(ctx, r.db)

	applyFilter := func(q *gorm.DB) *gorm.DB {
		if filter.Status != "" {
			q = q.Where("status = ?", filter.Status)
		}
		if filter.DepartmentID != nil {
			q = q.Where("department_id = ?", *filter.DepartmentID)
		}
		if filter.From != nil {
			q = q.Where("created_at >= ?", *filter.From)
		}
		if filter.To != nil {
			q = q.Where("created_at <= ?", *filter.To)
		}
		return q
	}

	var total int64
	if err := applyFilter(db.Model(&model.Request{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	var requests []model.Request
	err := applyFilter(db.
		Preload("Requester").
		Preload("Department").
		Preload("Approver")).
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *requestRepository) MarkTransition(ctx context.Context, id uint, status string, approverID uint, at time.Time) (int64, error) {
	result := GetDB(ctx, r.db).Model(&model.Request{}).
		Where("id = ? AND status = ?", id, model.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_by": approverID,
			"approved_at": at,
		})
	return result.RowsAffected, result.Error
}

func (r *requestRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.Request{}).Count(&total).Error
	return total, err
}

func (r *requestRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := GetDB(ctx, r.db).Model(&model.Request{}).
		Select("status, COUNT(*) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[string]int64{
		model.RequestStatusPending:  0,
		model.RequestStatusApproved: 0,
		model.RequestStatusRejected: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
