package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pgportal/backend/internal/models"
	"pgportal/backend/internal/storage"
)

// TenantList returns every active tenant joined with their room and
// latest rent status, for the owner dashboard.
func (h *Handler) TenantList(c *gin.Context) {
	tenants, err := h.Storage.ListTenants()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error fetching tenant list."})
		return
	}

	ids := make([]string, 0, len(tenants))
	for _, t := range tenants {
		ids = append(ids, t.ID)
	}

	latest, err := h.Storage.LatestRentByTenant(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error fetching tenant list."})
		return
	}

	rows := make([]models.TenantSummary, 0, len(tenants))
	for _, t := range tenants {
		row := models.TenantSummary{
			ID:         t.ID,
			Name:       t.Name,
			Email:      t.Email,
			Phone:      t.Phone,
			Room:       "N/A",
			JoinDate:   t.CreatedAt.Format("02/01/2006"),
			RentStatus: models.RentPending,
			DueDate:    "N/A",
		}
		if t.Room != nil {
			row.Room = t.Room.RoomNumber
			row.RentAmount = t.Room.RentAmount
		}
		if record, ok := latest[t.ID]; ok {
			row.RentStatus = record.Status
			row.DueDate = record.DueDate.Format("02/01/2006")
		}
		rows = append(rows, row)
	}

	c.JSON(http.StatusOK, rows)
}

// DeleteTenant removes a tenant, vacating their room as a side effect.
func (h *Handler) DeleteTenant(c *gin.Context) {
	if err := h.Assign.DeleteTenant(c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Tenant not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error: Database operation failed during deletion."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Tenant deleted successfully"})
}
