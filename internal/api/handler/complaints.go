package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pgportal/backend/internal/api/middleware"
	"pgportal/backend/internal/models"
	"pgportal/backend/internal/storage"
)

type createComplaintRequest struct {
	Room        string `json:"room"`
	Issue       string `json:"issue" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type updateComplaintStatusRequest struct {
	Status            string `json:"status"`
	ResolutionDetails string `json:"resolution_details"`
}

// CreateComplaint submits a new complaint for the caller. When the
// body omits the room, the caller's assigned room is used.
func (h *Handler) CreateComplaint(c *gin.Context) {
	var req createComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	tenantID := middleware.UserID(c)
	roomID := req.Room
	if roomID == "" {
		user, err := h.Storage.GetUserByID(tenantID)
		if err != nil || user.RoomID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "A room is required to submit a complaint"})
			return
		}
		roomID = *user.RoomID
	}

	complaint := &models.Complaint{
		TenantID:    tenantID,
		RoomID:      roomID,
		Issue:       req.Issue,
		Description: req.Description,
		Status:      models.ComplaintPending,
	}

	if err := h.Storage.CreateComplaint(complaint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error submitting complaint."})
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

// MyComplaints returns the caller's complaints, newest first.
func (h *Handler) MyComplaints(c *gin.Context) {
	complaints, err := h.Storage.ListComplaintsForTenant(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error fetching tenant complaints."})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// ListComplaints returns all complaints for the owner view.
func (h *Handler) ListComplaints(c *gin.Context) {
	complaints, err := h.Storage.ListComplaints()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error fetching all complaints."})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// UpdateComplaintStatus lets the owner move a complaint through its
// lifecycle and attach resolution details.
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	var req updateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	complaint, err := h.Storage.GetComplaintByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error updating complaint status."})
		return
	}

	if req.Status != "" {
		complaint.Status = req.Status
	}
	if req.ResolutionDetails != "" {
		complaint.ResolutionDetails = req.ResolutionDetails
	}

	if err := h.Storage.UpdateComplaint(complaint); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error updating complaint status."})
		return
	}

	c.JSON(http.StatusOK, complaint)
}

// DeleteComplaint removes a complaint. Only the tenant who created it
// may delete it.
func (h *Handler) DeleteComplaint(c *gin.Context) {
	complaint, err := h.Storage.GetComplaintByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Complaint not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error deleting complaint."})
		return
	}

	if complaint.TenantID != middleware.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"message": "Not allowed to delete this complaint"})
		return
	}

	if err := h.Storage.DeleteComplaint(complaint.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error deleting complaint."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Complaint deleted successfully"})
}
