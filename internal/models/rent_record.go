package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rent record statuses. A record starts Pending, moves to Overdue when
// its due date passes unpaid, and ends Paid. Paid is terminal and there
// is no way back from Overdue to Pending.
const (
	RentPending = "Pending"
	RentPaid    = "Paid"
	RentOverdue = "Overdue"
)

// RentRecord is one monthly rent obligation for a tenant in a room.
// The (tenant, room, month) triple is unique: the composite index is
// the backstop against duplicate records under concurrent creation.
type RentRecord struct {
	ID       string `gorm:"primaryKey" json:"id"`
	TenantID string `gorm:"not null;uniqueIndex:idx_tenant_room_month" json:"tenant_id"`
	Tenant   *User  `gorm:"foreignKey:TenantID" json:"tenant,omitempty"`
	RoomID   string `gorm:"not null;uniqueIndex:idx_tenant_room_month" json:"room_id"`
	Room     *Room  `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	// Month identifies the billing period as "YYYY-MM".
	Month  string `gorm:"not null;uniqueIndex:idx_tenant_room_month" json:"month"`
	Amount int64  `gorm:"not null" json:"amount"`
	// DueDate is the 5th of the billing month.
	DueDate       time.Time  `gorm:"not null" json:"due_date"`
	Status        string     `gorm:"not null;default:'Pending'" json:"status"`
	PaidAt        *time.Time `json:"paid_at"`
	PaymentMethod string     `gorm:"default:'Manual'" json:"payment_method"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *RentRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// MonthKey formats t's year and month as a rent billing period key,
// e.g. "2025-11".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
