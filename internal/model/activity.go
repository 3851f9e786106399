package model

import (
	"time"
)

// Activity action labels
const (
	ActionLogin          = "login"
	ActionCreateRequest  = "create_request"
	ActionApproveRequest = "approve_request"
	ActionRejectRequest  = "reject_request"
	ActionCreateItem     = "create_item"
)

// ActivityLog tracks who did what and from where. Append-only; written as a
// side effect of sensitive actions (login, request lifecycle changes).
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Action    string    `gorm:"type:varchar(50);not null;index" json:"action"`
	IPAddress string    `gorm:"type:varchar(45)" json:"ip_address"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Notification is an in-app message for a single user, e.g. telling a
// requester their request was approved or rejected.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
