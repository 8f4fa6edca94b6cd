package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles. An owner manages rooms, tenants and complaints;
// a tenant views their own data and pays rent.
const (
	RoleOwner  = "owner"
	RoleTenant = "tenant"
)

// User represents an account in the portal, either the property owner
// or a tenant. A tenant may be linked to at most one room; the link is
// maintained exclusively by the assignment service together with
// Room.CurrentTenantID.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:'tenant'" json:"role"`
	Phone        string `gorm:"default:'N/A'" json:"phone"`
	// RoomID is the room currently rented by this tenant, nil when unassigned.
	RoomID   *string `json:"room_id"`
	Room     *Room   `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	IsActive bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the
// record is created without an ID.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// FirstName returns the leading word of the user's full name,
// used by the chat assistant for greetings.
func (u *User) FirstName() string {
	for i, r := range u.Name {
		if r == ' ' {
			return u.Name[:i]
		}
	}
	return u.Name
}
