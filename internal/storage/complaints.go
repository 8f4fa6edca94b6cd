package storage

import (
	"log/slog"

	"pgportal/backend/internal/models"
)

func (s *Service) CreateComplaint(complaint *models.Complaint) error {
	if complaint.Status == "" {
		complaint.Status = models.ComplaintPending
	}
	if err := s.DB.Create(complaint).Error; err != nil {
		slog.Error("failed to save complaint", "tenant_id", complaint.TenantID, "error", err)
		return translate(err)
	}
	return nil
}

func (s *Service) GetComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.First(&complaint, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &complaint, nil
}

// ListComplaints returns every complaint for the owner view, newest
// first, with tenant and room populated.
func (s *Service) ListComplaints() ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Preload("Tenant").Preload("Room").
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		return nil, translate(err)
	}
	return complaints, nil
}

func (s *Service) ListComplaintsForTenant(tenantID string) ([]models.Complaint, error) {
	var complaints []models.Complaint
	err := s.DB.Preload("Room").
		Where("tenant_id = ?", tenantID).
		Order("created_at desc").
		Find(&complaints).Error
	if err != nil {
		return nil, translate(err)
	}
	return complaints, nil
}

func (s *Service) UpdateComplaint(complaint *models.Complaint) error {
	return translate(s.DB.Save(complaint).Error)
}

func (s *Service) DeleteComplaint(id string) error {
	return translate(s.DB.Delete(&models.Complaint{}, "id = ?", id).Error)
}

func (s *Service) CountPendingComplaints() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Complaint{}).
		Where("status = ?", models.ComplaintPending).
		Count(&count).Error
	return count, translate(err)
}

func (s *Service) CountPendingComplaintsForTenant(tenantID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Complaint{}).
		Where("tenant_id = ? AND status = ?", tenantID, models.ComplaintPending).
		Count(&count).Error
	return count, translate(err)
}
