package database

import (
	"fmt"
	"log"

	"warehouse/internal/model"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed inserts reference data and demo accounts if the store is empty.
// Running it against a populated database is a no-op.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&model.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		log.Println("Database already seeded")
		return nil
	}

	departments := []model.Department{
		{Name: "kitchen"},
		{Name: "bar"},
		{Name: "bakery"},
		{Name: "storage"},
	}
	if err := db.Create(&departments).Error; err != nil {
		return fmt.Errorf("seed departments: %w", err)
	}

	categories := []model.Category{
		{Name: "Vegetables"},
		{Name: "Meat"},
		{Name: "Dairy"},
		{Name: "Dry Goods"},
		{Name: "Beverages"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	items := []model.Item{
		{Name: "طماطم", NameEn: "Tomatoes", CategoryID: categories[0].ID, Unit: "kg", ParLevel: 20, CurrentStock: 45, UnitCost: decimal.NewFromFloat(1.50)},
		{Name: "بصل", NameEn: "Onions", CategoryID: categories[0].ID, Unit: "kg", ParLevel: 15, CurrentStock: 8, UnitCost: decimal.NewFromFloat(0.90)},
		{Name: "دجاج", NameEn: "Chicken", CategoryID: categories[1].ID, Unit: "kg", ParLevel: 30, CurrentStock: 25, UnitCost: decimal.NewFromFloat(4.20)},
		{Name: "لحم بقري", NameEn: "Beef", CategoryID: categories[1].ID, Unit: "kg", ParLevel: 20, CurrentStock: 32, UnitCost: decimal.NewFromFloat(9.80)},
		{Name: "حليب", NameEn: "Milk", CategoryID: categories[2].ID, Unit: "liter", ParLevel: 24, CurrentStock: 12, UnitCost: decimal.NewFromFloat(1.10)},
		{Name: "جبن", NameEn: "Cheese", CategoryID: categories[2].ID, Unit: "kg", ParLevel: 10, CurrentStock: 14, UnitCost: decimal.NewFromFloat(6.50)},
		{Name: "أرز", NameEn: "Rice", CategoryID: categories[3].ID, Unit: "kg", ParLevel: 50, CurrentStock: 120, UnitCost: decimal.NewFromFloat(1.30)},
		{Name: "دقيق", NameEn: "Flour", CategoryID: categories[3].ID, Unit: "kg", ParLevel: 40, CurrentStock: 35, UnitCost: decimal.NewFromFloat(0.80)},
		{Name: "عصير برتقال", NameEn: "Orange Juice", CategoryID: categories[4].ID, Unit: "liter", ParLevel: 12, CurrentStock: 30, UnitCost: decimal.NewFromFloat(2.40)},
	}
	if err := db.Create(&items).Error; err != nil {
		return fmt.Errorf("seed items: %w", err)
	}

	users := []struct {
		username string
		fullName string
		role     string
		dept     uint
		password string
	}{
		{"admin", "System Administrator", model.RoleAdmin, departments[3].ID, "admin123"},
		{"manager", "Warehouse Manager", model.RoleManager, departments[3].ID, "manager123"},
		{"chef", "Head Chef", model.RoleStaff, departments[0].ID, "chef123"},
		{"barista", "Bar Staff", model.RoleStaff, departments[1].ID, "barista123"},
	}
	for _, u := range users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash seed password: %w", err)
		}
		deptID := u.dept
		user := model.User{
			Username:     u.username,
			FullName:     u.fullName,
			Role:         u.role,
			DepartmentID: &deptID,
			Password:     string(hashed),
			IsActive:     true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}

	log.Println("Sample data inserted successfully")
	return nil
}
