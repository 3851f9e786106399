package model

import (
	"time"
)

// RequestStatus constants. The status machine only moves forward:
// pending -> approved, pending -> rejected. Both outcomes are terminal.
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// RequestPriority constants
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Request represents a stock request raised by a user for their department.
// Requests are never deleted; they form the audit trail of the workflow.
// RequestNumber is an external contract (REQ-<year>-<timestamp>) parsed by
// the frontend and immutable once assigned.
type Request struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	RequestNumber string        `gorm:"type:varchar(100);uniqueIndex;not null" json:"request_number"`
	RequesterID   uint          `gorm:"not null;index" json:"requester_id"`
	Requester     *User         `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	DepartmentID  uint          `gorm:"not null;index" json:"department_id"`
	Department    *Department   `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Priority      string        `gorm:"type:varchar(20);not null;default:'normal'" json:"priority"` // low, normal, high, urgent
	Notes         string        `gorm:"type:text" json:"notes"`
	Status        string        `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	ApprovedBy    *uint         `json:"approved_by"`
	Approver      *User         `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
	ApprovedAt    *time.Time    `json:"approved_at"`
	Items         []RequestItem `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt     time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// RequestItem is one line item of a Request. Created atomically with its
// parent and immutable thereafter. Unit is a denormalized copy of the
// item's unit at request time.
type RequestItem struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	RequestID         uint   `gorm:"not null;index" json:"request_id"`
	ItemID            uint   `gorm:"not null;index" json:"item_id"`
	Item              *Item  `gorm:"foreignKey:ItemID" json:"item,omitempty"`
	QuantityRequested int    `gorm:"not null" json:"quantity_requested"`
	Unit              string `gorm:"type:varchar(50)" json:"unit"`
}

// ValidRequestPriority reports whether p is a known priority level
func ValidRequestPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// TerminalStatus reports whether s is a terminal request status
func TerminalStatus(s string) bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}
