package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"warehouse/internal/model"
	"warehouse/internal/repository"
)

func TestDashboardAggregatesCountsAndValuation(t *testing.T) {
	db := setupTestDB(t)

	department := model.Department{Name: "kitchen"}
	require.NoError(t, db.Create(&department).Error)
	user := model.User{Username: "chef", FullName: "Chef", Password: "x", Role: model.RoleStaff, IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	category := model.Category{Name: "Dry Goods"}
	require.NoError(t, db.Create(&category).Error)

	// 10 * 1.50 + 4 * 2.25 = 24.00
	items := []model.Item{
		{Name: "Tomatoes", CategoryID: category.ID, Unit: "kg", UnitCost: decimal.RequireFromString("1.50"), ParLevel: 20, CurrentStock: 10, IsActive: true},
		{Name: "Cheese", CategoryID: category.ID, Unit: "kg", UnitCost: decimal.RequireFromString("2.25"), ParLevel: 2, CurrentStock: 4, IsActive: true},
		{Name: "Retired", CategoryID: category.ID, Unit: "kg", UnitCost: decimal.RequireFromString("99"), ParLevel: 1, CurrentStock: 100, IsActive: false},
	}
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}

	for i, status := range []string{
		model.RequestStatusPending,
		model.RequestStatusApproved,
		model.RequestStatusApproved,
		model.RequestStatusRejected,
	} {
		request := model.Request{
			RequestNumber: fmt.Sprintf("REQ-2026-%d", 3000+i),
			RequesterID:   user.ID,
			DepartmentID:  department.ID,
			Priority:      model.PriorityNormal,
			Status:        status,
		}
		require.NoError(t, db.Create(&request).Error)
	}

	service := NewReportService(db, repository.NewRequestRepository(db), repository.NewItemRepository(db))
	stats, err := service.Dashboard(context.Background())
	require.NoError(t, err)

	require.Equal(t, int64(4), stats.TotalRequests)
	require.Equal(t, int64(1), stats.PendingRequests)
	require.Equal(t, int64(2), stats.ApprovedRequests)
	require.Equal(t, int64(1), stats.RejectedRequests)
	require.Equal(t, int64(2), stats.TotalItems, "inactive items are not counted")
	require.True(t, stats.InventoryValue.Equal(decimal.RequireFromString("24")),
		"got %s", stats.InventoryValue)

	// Tomatoes sits below par, Cheese above it
	require.Len(t, stats.LowStock, 1)
	require.Equal(t, "Tomatoes", stats.LowStock[0].Name)
}

func TestDashboardOnEmptyStore(t *testing.T) {
	db := setupTestDB(t)

	service := NewReportService(db, repository.NewRequestRepository(db), repository.NewItemRepository(db))
	stats, err := service.Dashboard(context.Background())
	require.NoError(t, err)

	require.Zero(t, stats.TotalRequests)
	require.Zero(t, stats.PendingRequests)
	require.Zero(t, stats.TotalItems)
	require.True(t, stats.InventoryValue.IsZero())
	require.Empty(t, stats.LowStock)
}
