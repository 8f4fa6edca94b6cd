package storage

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"pgportal/backend/internal/models"
)

// UpsertRentRecord creates the rent record for its (tenant, room, month)
// triple if it does not exist yet, returning the stored record either
// way. Losing the insert race to a concurrent caller is not an error:
// the unique index rejects the second insert and the winner is returned.
func (s *Service) UpsertRentRecord(record *models.RentRecord) (*models.RentRecord, error) {
	existing, err := s.findRentRecord(record.TenantID, record.RoomID, record.Month)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := s.DB.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.findRentRecord(record.TenantID, record.RoomID, record.Month)
		}
		slog.Error("failed to create rent record",
			"tenant_id", record.TenantID, "month", record.Month, "error", err)
		return nil, translate(err)
	}
	return record, nil
}

func (s *Service) findRentRecord(tenantID, roomID, month string) (*models.RentRecord, error) {
	var record models.RentRecord
	err := s.DB.Preload("Room").
		Where("tenant_id = ? AND room_id = ? AND month = ?", tenantID, roomID, month).
		First(&record).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *Service) GetRentRecordByID(id string) (*models.RentRecord, error) {
	var record models.RentRecord
	if err := s.DB.Preload("Room").First(&record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

func (s *Service) UpdateRentRecord(record *models.RentRecord) error {
	return translate(s.DB.Save(record).Error)
}

// ListRentRecordsForTenant returns the tenant's records newest due
// date first.
func (s *Service) ListRentRecordsForTenant(tenantID string) ([]models.RentRecord, error) {
	var records []models.RentRecord
	err := s.DB.Preload("Room").
		Where("tenant_id = ?", tenantID).
		Order("due_date desc").
		Find(&records).Error
	if err != nil {
		slog.Error("failed to list rent records", "tenant_id", tenantID, "error", err)
		return nil, translate(err)
	}
	return records, nil
}

// MarkOverdueRentRecords flips Pending records with a due date before
// now to Overdue. An empty tenantID applies the sweep globally. The
// update is idempotent: already-Overdue records are not touched.
func (s *Service) MarkOverdueRentRecords(tenantID string, now time.Time) (int64, error) {
	q := s.DB.Model(&models.RentRecord{}).
		Where("status = ? AND due_date < ?", models.RentPending, now)
	if tenantID != "" {
		q = q.Where("tenant_id = ?", tenantID)
	}

	result := q.Update("status", models.RentOverdue)
	if result.Error != nil {
		slog.Error("overdue sweep failed", "tenant_id", tenantID, "error", result.Error)
		return 0, translate(result.Error)
	}
	return result.RowsAffected, nil
}

// SumRentByStatus groups rent amounts by status for the owner summary.
func (s *Service) SumRentByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	err := s.DB.Model(&models.RentRecord{}).
		Select("status, COALESCE(SUM(amount), 0) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		totals[row.Status] = row.Total
	}
	return totals, nil
}

// LatestRentByTenant maps each tenant ID to their most recent rent
// record by due date. Tenants with no records are absent from the map.
func (s *Service) LatestRentByTenant(tenantIDs []string) (map[string]models.RentRecord, error) {
	if len(tenantIDs) == 0 {
		return map[string]models.RentRecord{}, nil
	}

	var records []models.RentRecord
	err := s.DB.Where("tenant_id IN ?", tenantIDs).
		Order("due_date desc").
		Find(&records).Error
	if err != nil {
		return nil, translate(err)
	}

	latest := make(map[string]models.RentRecord)
	for _, record := range records {
		if _, ok := latest[record.TenantID]; !ok {
			latest[record.TenantID] = record
		}
	}
	return latest, nil
}
