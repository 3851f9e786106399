package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"warehouse/internal/database"
	"warehouse/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedRequestFixtures(t *testing.T, db *gorm.DB) (model.User, model.Department, model.Item) {
	t.Helper()

	department := model.Department{Name: "kitchen"}
	require.NoError(t, db.Create(&department).Error)

	deptID := department.ID
	user := model.User{
		Username:     "chef",
		FullName:     "Head Chef",
		Password:     "x",
		Role:         model.RoleStaff,
		DepartmentID: &deptID,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)

	category := model.Category{Name: "Vegetables"}
	require.NoError(t, db.Create(&category).Error)

	item := model.Item{
		Name:         "Tomatoes",
		CategoryID:   category.ID,
		Unit:         "kg",
		ParLevel:     10,
		CurrentStock: 25,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&item).Error)

	return user, department, item
}

func TestRequestRepositoryCreatePersistsLineItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	user, department, item := seedRequestFixtures(t, db)

	request := model.Request{
		RequestNumber: "REQ-2026-1000",
		RequesterID:   user.ID,
		DepartmentID:  department.ID,
		Priority:      model.PriorityNormal,
		Status:        model.RequestStatusPending,
		Items: []model.RequestItem{
			{ItemID: item.ID, QuantityRequested: 5, Unit: "kg"},
			{ItemID: item.ID, QuantityRequested: 2, Unit: "kg"},
		},
	}
	require.NoError(t, repo.Create(context.Background(), &request))
	require.NotZero(t, request.ID)

	loaded, err := repo.GetByIDWithRelations(context.Background(), request.ID)
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusPending, loaded.Status)
	require.Len(t, loaded.Items, 2)
	require.Equal(t, 5, loaded.Items[0].QuantityRequested)
	require.Equal(t, "Head Chef", loaded.Requester.FullName)
	require.Equal(t, "kitchen", loaded.Department.Name)
	require.NotNil(t, loaded.Items[0].Item)
	require.Equal(t, "Tomatoes", loaded.Items[0].Item.Name)
}

func TestRequestRepositoryMarkTransitionIsConditional(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	user, department, _ := seedRequestFixtures(t, db)

	request := model.Request{
		RequestNumber: "REQ-2026-1001",
		RequesterID:   user.ID,
		DepartmentID:  department.ID,
		Priority:      model.PriorityHigh,
		Status:        model.RequestStatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), &request))

	now := time.Now()
	rows, err := repo.MarkTransition(context.Background(), request.ID, model.RequestStatusApproved, user.ID, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), rows)

	loaded, err := repo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusApproved, loaded.Status)
	require.NotNil(t, loaded.ApprovedBy)
	require.Equal(t, user.ID, *loaded.ApprovedBy)
	require.NotNil(t, loaded.ApprovedAt)

	// A second transition finds no pending row to update
	rows, err = repo.MarkTransition(context.Background(), request.ID, model.RequestStatusRejected, user.ID, time.Now())
	require.NoError(t, err)
	require.Zero(t, rows)

	loaded, err = repo.GetByID(context.Background(), request.ID)
	require.NoError(t, err)
	require.Equal(t, model.RequestStatusApproved, loaded.Status, "terminal status must not be overwritten")
}

func TestRequestRepositoryListFiltersAndOrders(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	user, department, _ := seedRequestFixtures(t, db)

	other := model.Department{Name: "bar"}
	require.NoError(t, db.Create(&other).Error)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []struct {
		number string
		status string
		dept   uint
		age    time.Duration
	}{
		{"REQ-2026-1", model.RequestStatusPending, department.ID, 3 * time.Hour},
		{"REQ-2026-2", model.RequestStatusApproved, department.ID, 2 * time.Hour},
		{"REQ-2026-3", model.RequestStatusPending, other.ID, time.Hour},
	}
	for _, s := range seed {
		request := model.Request{
			RequestNumber: s.number,
			RequesterID:   user.ID,
			DepartmentID:  s.dept,
			Priority:      model.PriorityNormal,
			Status:        s.status,
		}
		require.NoError(t, repo.Create(context.Background(), &request))
		require.NoError(t, db.Model(&model.Request{}).
			Where("id = ?", request.ID).
			Update("created_at", base.Add(-s.age)).Error)
	}

	requests, total, err := repo.List(context.Background(), RequestFilter{Status: model.RequestStatusPending})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, requests, 2)
	require.Equal(t, "REQ-2026-3", requests[0].RequestNumber, "expected newest first")
	require.Equal(t, "REQ-2026-1", requests[1].RequestNumber)

	deptID := department.ID
	requests, total, err = repo.List(context.Background(), RequestFilter{DepartmentID: &deptID})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	for _, r := range requests {
		require.Equal(t, department.ID, r.DepartmentID)
	}

	from := base.Add(-90 * time.Minute)
	requests, total, err = repo.List(context.Background(), RequestFilter{From: &from})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "REQ-2026-3", requests[0].RequestNumber)

	to := base.Add(-150 * time.Minute)
	requests, total, err = repo.List(context.Background(), RequestFilter{To: &to})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, "REQ-2026-2", requests[0].RequestNumber)
}

func TestRequestRepositoryCountByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRequestRepository(db)
	user, department, _ := seedRequestFixtures(t, db)

	for i, status := range []string{
		model.RequestStatusPending,
		model.RequestStatusPending,
		model.RequestStatusApproved,
	} {
		request := model.Request{
			RequestNumber: fmt.Sprintf("REQ-2026-%d", 2000+i),
			RequesterID:   user.ID,
			DepartmentID:  department.ID,
			Priority:      model.PriorityNormal,
			Status:        status,
		}
		require.NoError(t, repo.Create(context.Background(), &request))
	}

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(2), counts[model.RequestStatusPending])
	require.Equal(t, int64(1), counts[model.RequestStatusApproved])
	require.Equal(t, int64(0), counts[model.RequestStatusRejected])

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
}
