package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Complaint statuses.
const (
	ComplaintPending    = "Pending"
	ComplaintInProgress = "In Progress"
	ComplaintResolved   = "Resolved"
)

// Complaint is a maintenance request raised by a tenant for their room.
type Complaint struct {
	ID                string `gorm:"primaryKey" json:"id"`
	TenantID          string `gorm:"not null;index" json:"tenant_id"`
	Tenant            *User  `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	RoomID            string `gorm:"not null" json:"room_id"`
	Room              *Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Issue             string `gorm:"not null" json:"issue"`
	Description       string `gorm:"not null" json:"description"`
	Status            string `gorm:"not null;default:'Pending'" json:"status"`
	ResolutionDetails string `json:"resolution_details"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
