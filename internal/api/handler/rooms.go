package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"pgportal/backend/internal/assignment"
	"pgportal/backend/internal/models"
	"pgportal/backend/internal/storage"
)

type createRoomRequest struct {
	RoomNumber string   `json:"room_number" binding:"required"`
	Type       string   `json:"type" binding:"required,oneof=single double triple"`
	RentAmount int64    `json:"rent_amount" binding:"required"`
	Capacity   int      `json:"capacity"`
	Amenities  []string `json:"amenities"`
}

type assignRoomRequest struct {
	TenantID string `json:"tenantId"`
	Action   string `json:"action" binding:"required"`
}

// CreateRoom adds a new room. Duplicate room numbers are rejected.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}

	room := &models.Room{
		RoomNumber: req.RoomNumber,
		Type:       req.Type,
		RentAmount: req.RentAmount,
		Status:     models.RoomVacant,
		Capacity:   capacity,
		Amenities:  pq.StringArray(req.Amenities),
	}

	if err := h.Storage.CreateRoom(room); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Room number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error creating room."})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// ListRooms returns every room with its current tenant joined, for the
// owner dashboard.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.Storage.ListRooms()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error fetching rooms."})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// AssignRoom assigns or unassigns a tenant, depending on the action in
// the body.
func (h *Handler) AssignRoom(c *gin.Context) {
	var req assignRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var (
		room *models.Room
		err  error
	)
	switch req.Action {
	case "assign":
		room, err = h.Assign.Assign(c.Param("id"), req.TenantID)
	case "unassign":
		room, err = h.Assign.Unassign(c.Param("id"))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid action specified"})
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Room or Tenant not found"})
		case errors.Is(err, assignment.ErrInvalidRole):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only a tenant can be assigned to a room"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error during room assignment."})
		}
		return
	}

	c.JSON(http.StatusOK, room)
}
