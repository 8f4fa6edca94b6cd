package assignment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pgportal/backend/internal/assignment"
	"pgportal/backend/internal/models"
	"pgportal/backend/internal/rent"
	"pgportal/backend/internal/storage"
)

func newTestService(t *testing.T) (*assignment.Service, *storage.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true, DisableForeignKeyConstraintWhenMigrating: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Complaint{},
		&models.RentRecord{},
	))

	s := storage.NewStorageService(db, nil)
	return assignment.NewService(s, rent.NewService(s)), s
}

func seedUser(t *testing.T, s *storage.Service, name, email, role string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: email, PasswordHash: "x", Role: role, IsActive: true}
	require.NoError(t, s.CreateUser(user))
	return user
}

func seedRoom(t *testing.T, s *storage.Service, number string, rentAmount int64) *models.Room {
	t.Helper()
	room := &models.Room{RoomNumber: number, Type: models.RoomSingle, RentAmount: rentAmount, Capacity: 1}
	require.NoError(t, s.CreateRoom(room))
	return room
}

// TestAssign_LinksBothSidesAndProvisionsRent verifies the assignment
// writes both sides of the relation and ensures the current month's
// rent record.
func TestAssign_LinksBothSidesAndProvisionsRent(t *testing.T) {
	svc, s := newTestService(t)
	tenant := seedUser(t, s, "Asha Verma", "asha@example.com", models.RoleTenant)
	room := seedRoom(t, s, "101", 9000)

	updated, err := svc.Assign(room.ID, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, updated.Status)

	storedRoom, err := s.GetRoomByID(room.ID)
	require.NoError(t, err)
	storedTenant, err := s.GetUserByID(tenant.ID)
	require.NoError(t, err)

	require.NotNil(t, storedRoom.CurrentTenantID)
	assert.Equal(t, tenant.ID, *storedRoom.CurrentTenantID)
	require.NotNil(t, storedTenant.RoomID)
	assert.Equal(t, room.ID, *storedTenant.RoomID)

	records, err := s.ListRentRecordsForTenant(tenant.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.MonthKey(time.Now()), records[0].Month)
	assert.Equal(t, int64(9000), records[0].Amount)
}

func TestAssign_MissingRoomOrTenant(t *testing.T) {
	svc, s := newTestService(t)
	tenant := seedUser(t, s, "Asha Verma", "asha@example.com", models.RoleTenant)
	room := seedRoom(t, s, "101", 9000)

	_, err := svc.Assign("missing", tenant.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = svc.Assign(room.ID, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAssign_OwnerRejected(t *testing.T) {
	svc, s := newTestService(t)
	owner := seedUser(t, s, "Owner Om", "owner@example.com", models.RoleOwner)
	room := seedRoom(t, s, "101", 9000)

	_, err := svc.Assign(room.ID, owner.ID)
	assert.ErrorIs(t, err, assignment.ErrInvalidRole)
}

// TestUnassign_KeepsRentRecords verifies unassigning clears the
// relation on both sides but leaves historical rent records untouched.
func TestUnassign_KeepsRentRecords(t *testing.T) {
	svc, s := newTestService(t)
	tenant := seedUser(t, s, "Asha Verma", "asha@example.com", models.RoleTenant)
	room := seedRoom(t, s, "101", 9000)

	_, err := svc.Assign(room.ID, tenant.ID)
	require.NoError(t, err)

	updated, err := svc.Unassign(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomVacant, updated.Status)
	assert.Nil(t, updated.CurrentTenantID)

	storedTenant, err := s.GetUserByID(tenant.ID)
	require.NoError(t, err)
	assert.Nil(t, storedTenant.RoomID)

	records, err := s.ListRentRecordsForTenant(tenant.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1, "rent records survive unassignment")
}

// TestDeleteTenant_FreesRoom verifies deletion vacates the tenant's
// room and removes the user for good.
func TestDeleteTenant_FreesRoom(t *testing.T) {
	svc, s := newTestService(t)
	tenant := seedUser(t, s, "Asha Verma", "asha@example.com", models.RoleTenant)
	room := seedRoom(t, s, "101", 9000)

	_, err := svc.Assign(room.ID, tenant.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTenant(tenant.ID))

	storedRoom, err := s.GetRoomByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomVacant, storedRoom.Status)
	assert.Nil(t, storedRoom.CurrentTenantID)

	_, err = s.GetUserByID(tenant.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDeleteTenant_OwnerNotDeletable(t *testing.T) {
	svc, s := newTestService(t)
	owner := seedUser(t, s, "Owner Om", "owner@example.com", models.RoleOwner)

	err := svc.DeleteTenant(owner.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.GetUserByID(owner.ID)
	assert.NoError(t, err, "owner record must still exist")
}
