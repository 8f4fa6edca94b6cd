package storage

import (
	"log/slog"

	"gorm.io/gorm"

	"pgportal/backend/internal/models"
)

// CreateUser inserts a new user. A duplicate email yields ErrDuplicate.
func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		slog.Error("failed to create user", "email", user.Email, "error", err)
		return translate(err)
	}
	return nil
}

// GetUserByID loads a user with their room populated.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Room").First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Room").First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return translate(s.DB.Save(user).Error)
}

// ListTenants returns all active tenants with their rooms populated,
// for the owner's tenant list.
func (s *Service) ListTenants() ([]models.User, error) {
	var tenants []models.User
	err := s.DB.Preload("Room").
		Where("role = ? AND is_active = ?", models.RoleTenant, true).
		Find(&tenants).Error
	if err != nil {
		slog.Error("failed to list tenants", "error", err)
		return nil, translate(err)
	}
	return tenants, nil
}

// CreateRoom inserts a new room. A duplicate room number yields ErrDuplicate.
func (s *Service) CreateRoom(room *models.Room) error {
	if err := s.DB.Create(room).Error; err != nil {
		slog.Error("failed to create room", "room_number", room.RoomNumber, "error", err)
		return translate(err)
	}
	return nil
}

func (s *Service) GetRoomByID(id string) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &room, nil
}

// ListRooms returns all rooms with their current tenants populated.
func (s *Service) ListRooms() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Preload("CurrentTenant").Find(&rooms).Error; err != nil {
		return nil, translate(err)
	}
	return rooms, nil
}

func (s *Service) CountRooms() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Room{}).Count(&count).Error
	return count, translate(err)
}

func (s *Service) CountRoomsByStatus(status string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Room{}).Where("status = ?", status).Count(&count).Error
	return count, translate(err)
}

// OccupiedRevenue sums rent over all occupied rooms, the owner's
// expected monthly income.
func (s *Service) OccupiedRevenue() (int64, error) {
	var total int64
	err := s.DB.Model(&models.Room{}).
		Where("status = ?", models.RoomOccupied).
		Select("COALESCE(SUM(rent_amount), 0)").
		Scan(&total).Error
	return total, translate(err)
}

// AssignRoom links the tenant to the room, writing both sides of the
// relation in a single transaction.
func (s *Service) AssignRoom(room *models.Room, tenant *models.User) error {
	room.CurrentTenantID = &tenant.ID
	room.Status = models.RoomOccupied
	tenant.RoomID = &room.ID

	return translate(s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(room).Error; err != nil {
			return err
		}
		return tx.Save(tenant).Error
	}))
}

// UnassignRoom clears both sides of the relation. The tenant may be
// nil when the room has no resolvable occupant.
func (s *Service) UnassignRoom(room *models.Room, tenant *models.User) error {
	room.CurrentTenantID = nil
	room.Status = models.RoomVacant

	return translate(s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(room).Updates(map[string]interface{}{
			"current_tenant_id": nil,
			"status":            models.RoomVacant,
		}).Error; err != nil {
			return err
		}
		if tenant != nil {
			tenant.RoomID = nil
			return tx.Model(tenant).Update("room_id", nil).Error
		}
		return nil
	}))
}

// DeleteTenant removes the user record, vacating their room first when
// one is held. Rent records are left untouched. The delete is hard;
// there is no soft-delete for tenants.
func (s *Service) DeleteTenant(tenant *models.User, room *models.Room) error {
	return translate(s.DB.Transaction(func(tx *gorm.DB) error {
		if room != nil {
			if err := tx.Model(room).Updates(map[string]interface{}{
				"current_tenant_id": nil,
				"status":            models.RoomVacant,
			}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, "id = ?", tenant.ID).Error
	}))
}
