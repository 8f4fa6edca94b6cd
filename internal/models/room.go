package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Room statuses.
const (
	RoomVacant      = "Vacant"
	RoomOccupied    = "Occupied"
	RoomMaintenance = "Maintenance"
)

// Room types.
const (
	RoomSingle = "single"
	RoomDouble = "double"
	RoomTriple = "triple"
)

// Room represents a rentable unit in the property.
// Status is Occupied exactly when CurrentTenantID is set; both fields
// are written only by the assignment service, never independently.
type Room struct {
	ID         string `gorm:"primaryKey" json:"id"`
	RoomNumber string `gorm:"uniqueIndex;not null" json:"room_number"`
	// Type is one of single, double or triple occupancy.
	Type       string `gorm:"not null" json:"type"`
	RentAmount int64  `gorm:"not null" json:"rent_amount"`
	Status     string `gorm:"not null;default:'Vacant'" json:"status"`
	// CurrentTenantID is the tenant assigned to this room, nil when vacant.
	CurrentTenantID *string        `json:"current_tenant_id"`
	CurrentTenant   *User          `gorm:"foreignKey:CurrentTenantID" json:"current_tenant,omitempty"`
	Capacity        int            `gorm:"not null;default:1" json:"capacity"`
	Amenities       pq.StringArray `gorm:"type:text[]" json:"amenities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the
// record is created without an ID.
func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}
