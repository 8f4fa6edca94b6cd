package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pgportal/backend/internal/api/middleware"
	"pgportal/backend/internal/storage"
)

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Me returns the caller's profile with their room populated.
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Storage.GetUserByID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error fetching user data."})
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe applies a partial profile update (name, phone) to the
// caller.
func (h *Handler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.Storage.GetUserByID(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error during profile update."})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}

	if err := h.Storage.UpdateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error during profile update."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
		"room":  user.Room,
		"role":  user.Role,
	})
}
