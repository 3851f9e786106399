package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups items in the catalog
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`
}

// Item represents a stocked article in the warehouse.
// ParLevel is the reorder threshold: an item with CurrentStock <= ParLevel
// counts as low stock.
type Item struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	NameEn       string          `gorm:"type:varchar(255)" json:"name_en,omitempty"` // secondary-language name
	CategoryID   uint            `gorm:"not null;index" json:"category_id"`
	Category     *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Unit         string          `gorm:"type:varchar(50);not null" json:"unit"` // kg, liter, piece, ...
	ParLevel     int             `gorm:"not null;default:0" json:"par_level"`
	CurrentStock int             `gorm:"not null;default:0" json:"current_stock"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(12,2);default:0" json:"unit_cost"`
	IsActive     bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
