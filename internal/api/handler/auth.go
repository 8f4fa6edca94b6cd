package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pgportal/backend/internal/auth"
	"pgportal/backend/internal/models"
	"pgportal/backend/internal/storage"
)

type registerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Role     string  `json:"role"`
	Room     *string `json:"room"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string     `json:"token"`
	User  userSubset `json:"user"`
}

type userSubset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Register creates a new user (owner or tenant) and logs them in
// immediately, returning a token.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("password hashing failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error during registration."})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleTenant
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		RoomID:       req.Room,
	}

	if err := h.Storage.CreateUser(user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error during registration."})
		return
	}

	token, err := h.JWT.Generate(user)
	if err != nil {
		slog.Error("token generation failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error during registration."})
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		Token: token,
		User:  userSubset{ID: user.ID, Name: user.Name, Role: user.Role},
	})
}

// Login authenticates a user by email and password.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	user, err := h.Storage.GetUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid Credentials"})
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid Credentials"})
		return
	}

	token, err := h.JWT.Generate(user)
	if err != nil {
		slog.Error("token generation failed", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error during login."})
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Token: token,
		User:  userSubset{ID: user.ID, Name: user.Name, Role: user.Role},
	})
}
