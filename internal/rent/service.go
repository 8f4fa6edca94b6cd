// Package rent implements the rent record lifecycle: idempotent
// creation of monthly obligations, the overdue sweep and payment.
//
// A record moves Pending -> Overdue when its due date passes, and
// Pending or Overdue -> Paid on an explicit payment. Paid is terminal.
package rent

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pgportal/backend/internal/config"
	"pgportal/backend/internal/models"
	"pgportal/backend/internal/storage"
)

var (
	// ErrForbidden is returned when a payer tries to pay a record
	// belonging to another tenant.
	ErrForbidden = errors.New("not allowed to pay this rent record")
	// ErrAlreadyPaid is returned when paying a record that is already
	// Paid. Payments are terminal and are never reapplied.
	ErrAlreadyPaid = errors.New("rent record already paid")
)

// Service manages rent records over the storage layer.
type Service struct {
	Storage storage.Storage
}

func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// DueDate returns the due date for the billing month containing ref:
// always the 5th of that month.
func DueDate(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month(), config.RentDueDay, 0, 0, 0, 0, ref.Location())
}

// EnsureMonthRecord guarantees a rent record exists for the tenant,
// room and the month containing ref. Calling it again for the same
// triple returns the stored record unchanged; concurrent calls are
// resolved by the unique index on (tenant, room, month).
func (s *Service) EnsureMonthRecord(tenantID string, room *models.Room, ref time.Time) (*models.RentRecord, error) {
	if room == nil {
		return nil, nil
	}

	record := &models.RentRecord{
		TenantID:      tenantID,
		RoomID:        room.ID,
		Month:         models.MonthKey(ref),
		Amount:        room.RentAmount,
		DueDate:       DueDate(ref),
		Status:        models.RentPending,
		PaymentMethod: config.DefaultPaymentMethod,
	}

	stored, err := s.Storage.UpsertRentRecord(record)
	if err != nil {
		return nil, fmt.Errorf("ensure rent record for %s: %w", record.Month, err)
	}
	return stored, nil
}

// MarkOverdue flips Pending records whose due date has passed to
// Overdue. An empty tenantID sweeps all tenants. The sweep is
// idempotent; repeating it changes nothing.
func (s *Service) MarkOverdue(tenantID string) error {
	flipped, err := s.Storage.MarkOverdueRentRecords(tenantID, time.Now())
	if err != nil {
		return fmt.Errorf("overdue sweep: %w", err)
	}
	if flipped > 0 {
		slog.Info("rent records marked overdue", "count", flipped, "tenant_id", tenantID)
	}
	return nil
}

// Pay marks a record Paid on behalf of payerID. Only the record's own
// tenant may pay it. Paying an already-Paid record is rejected with
// ErrAlreadyPaid.
func (s *Service) Pay(recordID, payerID string) (*models.RentRecord, error) {
	record, err := s.Storage.GetRentRecordByID(recordID)
	if err != nil {
		return nil, err
	}
	if record.TenantID != payerID {
		return nil, ErrForbidden
	}
	if record.Status == models.RentPaid {
		return nil, ErrAlreadyPaid
	}

	now := time.Now()
	record.Status = models.RentPaid
	record.PaidAt = &now
	if err := s.Storage.UpdateRentRecord(record); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	slog.Info("rent payment recorded", "record_id", record.ID, "tenant_id", payerID, "month", record.Month)
	return record, nil
}

// History returns the tenant's rent records newest due date first,
// after provisioning records for the previous, current and next
// calendar month and running the overdue sweep. A tenant without a
// room has no records. The three ensure calls are independent: one
// failing is logged and must not abort the others.
func (s *Service) History(tenantID string) ([]models.RentRecord, error) {
	user, err := s.Storage.GetUserByID(tenantID)
	if err != nil {
		return nil, err
	}
	if user.Room == nil {
		return []models.RentRecord{}, nil
	}

	// Anchor to the first of the month so month arithmetic never
	// normalizes across a boundary (e.g. Mar 31 minus one month).
	now := time.Now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, ref := range []time.Time{
		first.AddDate(0, -1, 0),
		first,
		first.AddDate(0, 1, 0),
	} {
		if _, err := s.EnsureMonthRecord(tenantID, user.Room, ref); err != nil {
			slog.Warn("failed to provision rent record",
				"tenant_id", tenantID, "month", models.MonthKey(ref), "error", err)
		}
	}

	if err := s.MarkOverdue(tenantID); err != nil {
		slog.Warn("overdue sweep failed during history", "tenant_id", tenantID, "error", err)
	}

	return s.Storage.ListRentRecordsForTenant(tenantID)
}

// Summary computes the owner's global totals per status after a global
// overdue sweep. Outstanding is the Pending plus Overdue total.
func (s *Service) Summary() (*models.RentSummary, error) {
	if err := s.MarkOverdue(""); err != nil {
		return nil, err
	}

	sums, err := s.Storage.SumRentByStatus()
	if err != nil {
		return nil, fmt.Errorf("rent summary: %w", err)
	}

	totals := map[string]int64{
		models.RentPaid:    0,
		models.RentPending: 0,
		models.RentOverdue: 0,
	}
	for status, total := range sums {
		if _, ok := totals[status]; ok {
			totals[status] = total
		}
	}

	return &models.RentSummary{
		Totals:      totals,
		Outstanding: totals[models.RentPending] + totals[models.RentOverdue],
	}, nil
}
