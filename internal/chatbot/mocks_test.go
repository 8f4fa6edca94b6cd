package chatbot_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"pgportal/backend/internal/models"
)

// MockStorage is a testify/mock implementation of the storage.Storage
// interface so responder tests can script aggregate results without a
// database.
type MockStorage struct {
	mock.Mock
}

// User operations
func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) ListTenants() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// Room operations
func (m *MockStorage) CreateRoom(room *models.Room) error {
	args := m.Called(room)
	return args.Error(0)
}

func (m *MockStorage) GetRoomByID(id string) (*models.Room, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}

func (m *MockStorage) ListRooms() ([]models.Room, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Room), args.Error(1)
}

func (m *MockStorage) CountRooms() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountRoomsByStatus(status string) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) OccupiedRevenue() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// Assignment relation
func (m *MockStorage) AssignRoom(room *models.Room, tenant *models.User) error {
	args := m.Called(room, tenant)
	return args.Error(0)
}

func (m *MockStorage) UnassignRoom(room *models.Room, tenant *models.User) error {
	args := m.Called(room, tenant)
	return args.Error(0)
}

func (m *MockStorage) DeleteTenant(tenant *models.User, room *models.Room) error {
	args := m.Called(tenant, room)
	return args.Error(0)
}

// Complaint operations
func (m *MockStorage) CreateComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaints() ([]models.Complaint, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaintsForTenant(tenantID string) ([]models.Complaint, error) {
	args := m.Called(tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) UpdateComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) DeleteComplaint(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) CountPendingComplaints() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountPendingComplaintsForTenant(tenantID string) (int64, error) {
	args := m.Called(tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// Rent record operations
func (m *MockStorage) UpsertRentRecord(record *models.RentRecord) (*models.RentRecord, error) {
	args := m.Called(record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RentRecord), args.Error(1)
}

func (m *MockStorage) GetRentRecordByID(id string) (*models.RentRecord, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RentRecord), args.Error(1)
}

func (m *MockStorage) UpdateRentRecord(record *models.RentRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockStorage) ListRentRecordsForTenant(tenantID string) ([]models.RentRecord, error) {
	args := m.Called(tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RentRecord), args.Error(1)
}

func (m *MockStorage) MarkOverdueRentRecords(tenantID string, now time.Time) (int64, error) {
	args := m.Called(tenantID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SumRentByStatus() (map[string]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockStorage) LatestRentByTenant(tenantIDs []string) (map[string]models.RentRecord, error) {
	args := m.Called(tenantIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]models.RentRecord), args.Error(1)
}

// Cached aggregates. The mock runs the fetch closure so responder
// tests exercise the real aggregate wiring.
func (m *MockStorage) CachedCount(key string, ttl time.Duration, fetch func() (int64, error)) (int64, error) {
	args := m.Called(key, ttl, fetch)
	if fn, ok := args.Get(0).(func() (int64, error)); ok {
		return fn()
	}
	return fetch()
}
