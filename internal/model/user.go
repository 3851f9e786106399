package model

import (
	"time"
)

// Role constants for User.Role
const (
	RoleStaff   = "staff"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// User represents the central user entity for logic and database structure.
// Users are deactivated via IsActive rather than deleted so that request
// history keeps resolving to a requester.
type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Username     string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	FullName     string      `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string      `gorm:"type:varchar(255)" json:"email,omitempty"`
	Phone        string      `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Password     string      `gorm:"type:varchar(255);not null" json:"-"`   // Omit password from JSON requests/responses
	Role         string      `gorm:"type:varchar(50);not null" json:"role"` // staff, manager, admin
	DepartmentID *uint       `gorm:"index" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	IsActive     bool        `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// Department groups users and requests (kitchen, bar, ...)
type Department struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
}

// ValidRole reports whether role is one of the fixed role set
func ValidRole(role string) bool {
	return role == RoleStaff || role == RoleManager || role == RoleAdmin
}
