// Package assignment is the single authority over the Room <-> User
// relation. Both sides of the link are only ever written here, through
// one transactional storage call, so no half-linked state can survive
// an operation.
package assignment

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pgportal/backend/internal/models"
	"pgportal/backend/internal/rent"
	"pgportal/backend/internal/storage"
)

// ErrInvalidRole is returned when the target of an assignment or a
// tenant deletion is not a tenant.
var ErrInvalidRole = errors.New("only a tenant can be assigned to a room")

// Service mutates the room/tenant relation and triggers rent record
// provisioning on assignment.
type Service struct {
	Storage storage.Storage
	Rent    *rent.Service
}

func NewService(s storage.Storage, r *rent.Service) *Service {
	return &Service{Storage: s, Rent: r}
}

// Assign links the tenant to the room, marks the room Occupied and
// ensures a rent record exists for the current month. The rent record
// is provisioned after the link commits; a provisioning failure is
// logged, not fatal, because the tenant's history view re-ensures it.
func (s *Service) Assign(roomID, tenantID string) (*models.Room, error) {
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}
	tenant, err := s.Storage.GetUserByID(tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.Role != models.RoleTenant {
		return nil, ErrInvalidRole
	}

	if err := s.Storage.AssignRoom(room, tenant); err != nil {
		return nil, fmt.Errorf("assign room %s: %w", room.RoomNumber, err)
	}

	if _, err := s.Rent.EnsureMonthRecord(tenant.ID, room, time.Now()); err != nil {
		slog.Warn("failed to provision rent record on assignment",
			"room", room.RoomNumber, "tenant_id", tenant.ID, "error", err)
	}

	slog.Info("room assigned", "room", room.RoomNumber, "tenant_id", tenant.ID)
	return room, nil
}

// Unassign clears both sides of the relation and marks the room
// Vacant. Existing rent records are left untouched.
func (s *Service) Unassign(roomID string) (*models.Room, error) {
	room, err := s.Storage.GetRoomByID(roomID)
	if err != nil {
		return nil, err
	}

	var tenant *models.User
	if room.CurrentTenantID != nil {
		tenant, err = s.Storage.GetUserByID(*room.CurrentTenantID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.Storage.UnassignRoom(room, tenant); err != nil {
		return nil, fmt.Errorf("unassign room %s: %w", room.RoomNumber, err)
	}

	slog.Info("room unassigned", "room", room.RoomNumber)
	return room, nil
}

// DeleteTenant removes a tenant for good, vacating their room as a
// side effect. The target must exist and hold the tenant role. Rent
// records survive as payment history.
func (s *Service) DeleteTenant(tenantID string) error {
	tenant, err := s.Storage.GetUserByID(tenantID)
	if err != nil {
		return err
	}
	if tenant.Role != models.RoleTenant {
		return storage.ErrNotFound
	}

	var room *models.Room
	if tenant.RoomID != nil {
		room, err = s.Storage.GetRoomByID(*tenant.RoomID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return err
		}
	}

	if err := s.Storage.DeleteTenant(tenant, room); err != nil {
		return fmt.Errorf("delete tenant %s: %w", tenantID, err)
	}

	slog.Info("tenant deleted", "tenant_id", tenantID)
	return nil
}
