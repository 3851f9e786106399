package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"warehouse/internal/model"
	"warehouse/internal/repository"
	ws "warehouse/internal/websocket"
	"warehouse/pkg/apperror"

	"gorm.io/gorm"
)

// --- DTOs ---

type RequestLineItemInput struct {
	ItemID   uint   `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
	Unit     string `json:"unit"`
}

type CreateRequestInput struct {
	Department string                 `json:"department" binding:"required"`
	Priority   string                 `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
	Notes      string                 `json:"notes"`
	Items      []RequestLineItemInput `json:"items" binding:"required,min=1,dive"`
}

type TransitionInput struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// ListRequestsFilter filters the request listing. Department is matched by
// name; a name that resolves to no department yields an empty result.
type ListRequestsFilter struct {
	Status     string
	Department string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

type RequestSummary struct {
	ID             uint    `json:"id"`
	RequestNumber  string  `json:"request_number"`
	RequesterID    uint    `json:"requester_id"`
	RequesterName  string  `json:"requester_name"`
	DepartmentID   uint    `json:"department_id"`
	DepartmentName string  `json:"department_name"`
	Priority       string  `json:"priority"`
	Notes          string  `json:"notes,omitempty"`
	Status         string  `json:"status"`
	ApprovedBy     *uint   `json:"approved_by"`
	ApproverName   string  `json:"approver_name,omitempty"`
	ApprovedAt     *string `json:"approved_at"`
	CreatedAt      string  `json:"created_at"`
}

type RequestLineItem struct {
	ID                uint   `json:"id"`
	ItemID            uint   `json:"item_id"`
	ItemName          string `json:"name"`
	ItemNameEn        string `json:"name_en,omitempty"`
	QuantityRequested int    `json:"quantity_requested"`
	Unit              string `json:"unit"`
}

type RequestDetail struct {
	RequestSummary
	Items []RequestLineItem `json:"items"`
}

// --- Interface ---

type RequestService interface {
	Create(ctx context.Context, requesterID uint, ip string, in CreateRequestInput) (*RequestDetail, error)
	Get(ctx context.Context, id uint) (*RequestDetail, error)
	List(ctx context.Context, filter ListRequestsFilter) ([]RequestSummary, int64, error)
	Transition(ctx context.Context, requestID uint, newStatus string, approverID uint, ip string) (*RequestDetail, error)
}

type requestService struct {
	requestRepo      repository.RequestRepository
	userRepo         repository.UserRepository
	itemRepo         repository.ItemRepository
	departmentRepo   repository.DepartmentRepository
	activityRepo     repository.ActivityRepository
	notificationRepo repository.NotificationRepository
	txManager        repository.TransactionManager
	hub              *ws.Hub

	// Guards request-number generation: the millisecond component must be
	// strictly increasing so two in-process creations in the same
	// millisecond cannot collide. The unique index backs this across
	// processes.
	numMu   sync.Mutex
	lastNum int64
}

func NewRequestService(
	requestRepo repository.RequestRepository,
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	departmentRepo repository.DepartmentRepository,
	activityRepo repository.ActivityRepository,
	notificationRepo repository.NotificationRepository,
	txManager repository.TransactionManager,
	hub *ws.Hub,
) RequestService {
	return &requestService{
		requestRepo:      requestRepo,
		userRepo:         userRepo,
		itemRepo:         itemRepo,
		departmentRepo:   departmentRepo,
		activityRepo:     activityRepo,
		notificationRepo: notificationRepo,
		txManager:        txManager,
		hub:              hub,
	}
}

// nextRequestNumber derives the REQ-<year>-<timestamp> contract number.
// The frontend parses this format for display; it must remain stable.
func (s *requestService) nextRequestNumber(now time.Time) string {
	s.numMu.Lock()
	defer s.numMu.Unlock()

	component := now.UnixMilli()
	if component <= s.lastNum {
		component = s.lastNum + 1
	}
	s.lastNum = component

	return fmt.Sprintf("REQ-%d-%d", now.Year(), component)
}

func (s *requestService) Create(ctx context.Context, requesterID uint, ip string, in CreateRequestInput) (*RequestDetail, error) {
	if len(in.Items) == 0 {
		return nil, apperror.Validation("a request needs at least one line item")
	}
	for i, line := range in.Items {
		if line.Quantity <= 0 {
			return nil, apperror.Validation("line item %d: quantity must be positive", i+1)
		}
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityNormal
	}
	if !model.ValidRequestPriority(priority) {
		return nil, apperror.Validation("unknown priority %q", priority)
	}

	requester, err := s.userRepo.GetActiveByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("requester %d is not an active user", requesterID)
		}
		return nil, apperror.Internal(err)
	}

	department, err := s.departmentRepo.GetByName(ctx, in.Department)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Validation("unknown department %q", in.Department)
		}
		return nil, apperror.Internal(err)
	}

	itemIDs := make([]uint, 0, len(in.Items))
	for _, line := range in.Items {
		itemIDs = append(itemIDs, line.ItemID)
	}
	items, err := s.itemRepo.ListActiveByIDs(ctx, itemIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	itemByID := make(map[uint]model.Item, len(items))
	for _, item := range items {
		itemByID[item.ID] = item
	}

	now := time.Now()
	request := model.Request{
		RequestNumber: s.nextRequestNumber(now),
		RequesterID:   requester.ID,
		DepartmentID:  department.ID,
		Priority:      priority,
		Notes:         in.Notes,
		Status:        model.RequestStatusPending,
	}
	for _, line := range in.Items {
		item, ok := itemByID[line.ItemID]
		if !ok {
			return nil, apperror.NotFound("item %d not found", line.ItemID)
		}
		unit := line.Unit
		if unit == "" {
			unit = item.Unit // denormalize the item's unit at request time
		}
		request.Items = append(request.Items, model.RequestItem{
			ItemID:            item.ID,
			QuantityRequested: line.Quantity,
			Unit:              unit,
		})
	}

	// Request, line items and the activity entry land all-or-nothing so a
	// failed line item cannot leave an orphaned request behind.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.requestRepo.Create(txCtx, &request); createErr != nil {
			return createErr
		}
		requesterRef := requester.ID
		return s.activityRepo.Create(txCtx, &model.ActivityLog{
			UserID:    &requesterRef,
			Action:    model.ActionCreateRequest,
			IPAddress: ip,
		})
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	s.hub.BroadcastRequestEvent(ws.EventRequestCreated, request.ID, request.RequestNumber, request.Status)

	return s.Get(ctx, request.ID)
}

func (s *requestService) Get(ctx context.Context, id uint) (*RequestDetail, error) {
	request, err := s.requestRepo.GetByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("request %d not found", id)
		}
		return nil, apperror.Internal(err)
	}

	detail := RequestDetail{
		RequestSummary: toRequestSummary(*request),
		Items:          make([]RequestLineItem, 0, len(request.Items)),
	}
	for _, line := range request.Items {
		out := RequestLineItem{
			ID:                line.ID,
			ItemID:            line.ItemID,
			QuantityRequested: line.QuantityRequested,
			Unit:              line.Unit,
		}
		if line.Item != nil {
			out.ItemName = line.Item.Name
			out.ItemNameEn = line.Item.NameEn
		}
		detail.Items = append(detail.Items, out)
	}

	return &detail, nil
}

func (s *requestService) List(ctx context.Context, filter ListRequestsFilter) ([]RequestSummary, int64, error) {
	repoFilter := repository.RequestFilter{
		Status: filter.Status,
		From:   filter.From,
		To:     filter.To,
		Page:   filter.Page,
		Limit:  filter.Limit,
	}

	if filter.Department != "" {
		department, err := s.departmentRepo.GetByName(ctx, filter.Department)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []RequestSummary{}, 0, nil
			}
			return nil, 0, apperror.Internal(err)
		}
		repoFilter.DepartmentID = &department.ID
	}

	requests, total, err := s.requestRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}

	result := make([]RequestSummary, 0, len(requests))
	for _, r := range requests {
		result = append(result, toRequestSummary(r))
	}
	return result, total, nil
}

func (s *requestService) Transition(ctx context.Context, requestID uint, newStatus string, approverID uint, ip string) (*RequestDetail, error) {
	if !model.TerminalStatus(newStatus) {
		return nil, apperror.Validation("status must be %q or %q", model.RequestStatusApproved, model.RequestStatusRejected)
	}

	var request *model.Request
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		request, findErr = s.requestRepo.GetByID(txCtx, requestID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return apperror.NotFound("request %d not found", requestID)
			}
			return findErr
		}
		if request.Status != model.RequestStatusPending {
			return apperror.InvalidState("request %s is already %s", request.RequestNumber, request.Status)
		}

		// Conditional update: the WHERE status='pending' clause makes the
		// transition compare-and-swap-like, so a concurrent approver loses
		// instead of silently overwriting.
		now := time.Now()
		rows, updErr := s.requestRepo.MarkTransition(txCtx, requestID, newStatus, approverID, now)
		if updErr != nil {
			return updErr
		}
		if rows == 0 {
			return apperror.InvalidState("request %s was already decided", request.RequestNumber)
		}

		action := model.ActionApproveRequest
		if newStatus == model.RequestStatusRejected {
			action = model.ActionRejectRequest
		}
		approverRef := approverID
		if logErr := s.activityRepo.Create(txCtx, &model.ActivityLog{
			UserID:    &approverRef,
			Action:    action,
			IPAddress: ip,
		}); logErr != nil {
			return logErr
		}

		return s.notificationRepo.Create(txCtx, &model.Notification{
			UserID:  request.RequesterID,
			Message: fmt.Sprintf("Your request %s has been %s", request.RequestNumber, newStatus),
		})
	})
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Internal(err)
	}

	event := ws.EventRequestApproved
	if newStatus == model.RequestStatusRejected {
		event = ws.EventRequestRejected
	}
	s.hub.BroadcastRequestEvent(event, request.ID, request.RequestNumber, newStatus)

	return s.Get(ctx, requestID)
}

// --- Helpers ---

func toRequestSummary(r model.Request) RequestSummary {
	summary := RequestSummary{
		ID:            r.ID,
		RequestNumber: r.RequestNumber,
		RequesterID:   r.RequesterID,
		DepartmentID:  r.DepartmentID,
		Priority:      r.Priority,
		Notes:         r.Notes,
		Status:        r.Status,
		ApprovedBy:    r.ApprovedBy,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
	}
	if r.Requester != nil {
		summary.RequesterName = r.Requester.FullName
	}
	if r.Department != nil {
		summary.DepartmentName = r.Department.Name
	}
	if r.Approver != nil {
		summary.ApproverName = r.Approver.FullName
	}
	if r.ApprovedAt != nil {
		approvedAt := r.ApprovedAt.Format(time.RFC3339)
		summary.ApprovedAt = &approvedAt
	}
	return summary
}
