package storage

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"pgportal/backend/internal/models"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write violates a uniqueness
// constraint (email, room number, rent record triple).
var ErrDuplicate = errors.New("duplicate record")

type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	ListTenants() ([]models.User, error)

	// Rooms
	CreateRoom(room *models.Room) error
	GetRoomByID(id string) (*models.Room, error)
	ListRooms() ([]models.Room, error)
	CountRooms() (int64, error)
	CountRoomsByStatus(status string) (int64, error)
	OccupiedRevenue() (int64, error)

	// Assignment relation. Both sides of the Room<->User link are
	// written inside one transaction so no half-linked state survives.
	AssignRoom(room *models.Room, tenant *models.User) error
	UnassignRoom(room *models.Room, tenant *models.User) error
	DeleteTenant(tenant *models.User, room *models.Room) error

	// Complaints
	CreateComplaint(complaint *models.Complaint) error
	GetComplaintByID(id string) (*models.Complaint, error)
	ListComplaints() ([]models.Complaint, error)
	ListComplaintsForTenant(tenantID string) ([]models.Complaint, error)
	UpdateComplaint(complaint *models.Complaint) error
	DeleteComplaint(id string) error
	CountPendingComplaints() (int64, error)
	CountPendingComplaintsForTenant(tenantID string) (int64, error)

	// Rent records
	UpsertRentRecord(record *models.RentRecord) (*models.RentRecord, error)
	GetRentRecordByID(id string) (*models.RentRecord, error)
	UpdateRentRecord(record *models.RentRecord) error
	ListRentRecordsForTenant(tenantID string) ([]models.RentRecord, error)
	MarkOverdueRentRecords(tenantID string, now time.Time) (int64, error)
	SumRentByStatus() (map[string]int64, error)
	LatestRentByTenant(tenantIDs []string) (map[string]models.RentRecord, error)

	// Cached aggregates
	CachedCount(key string, ttl time.Duration, fetch func() (int64, error)) (int64, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor. The Redis client is optional; when it
// is nil cached aggregates fall through to the database.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// translate maps GORM errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
