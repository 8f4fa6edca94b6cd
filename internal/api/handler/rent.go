package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pgportal/backend/internal/api/middleware"
	"pgportal/backend/internal/rent"
	"pgportal/backend/internal/storage"
)

type payRentRequest struct {
	RentRecordID string `json:"rentRecordId" binding:"required"`
}

type reminderTextRequest struct {
	Amount   *int64 `json:"amount" binding:"required"`
	DueDate  string `json:"dueDate" binding:"required"`
	DaysLeft *int   `json:"daysLeft" binding:"required"`
}

// PayRent marks a rent record as Paid. A tenant can pay only their own
// record; re-paying a Paid record is rejected.
func (h *Handler) PayRent(c *gin.Context) {
	var req payRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "rentRecordId is required"})
		return
	}

	record, err := h.Rent.Pay(req.RentRecordID, middleware.UserID(c))
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Rent record not found"})
		case errors.Is(err, rent.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"message": "Not allowed to pay this rent record"})
		case errors.Is(err, rent.ErrAlreadyPaid):
			c.JSON(http.StatusConflict, gin.H{"message": "Rent record already paid"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error recording payment."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Payment recorded", "record": record})
}

// RentHistory returns the caller's rent records, provisioning the
// previous, current and next month first and sweeping overdue.
func (h *Handler) RentHistory(c *gin.Context) {
	records, err := h.Rent.History(middleware.UserID(c))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error fetching rent history."})
		return
	}
	c.JSON(http.StatusOK, records)
}

// RentSummary returns the owner's global totals by status and the
// outstanding amount.
func (h *Handler) RentSummary(c *gin.Context) {
	summary, err := h.Rent.Summary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error generating rent summary."})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RentReminderText returns the one-line dashboard reminder for the
// given amount and due date. It delegates to the chat responder, which
// never fails.
func (h *Handler) RentReminderText(c *gin.Context) {
	var req reminderTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "amount, dueDate and daysLeft are required"})
		return
	}

	text := h.Chat.ReminderText(*req.Amount, req.DueDate, *req.DaysLeft)
	c.JSON(http.StatusOK, gin.H{"text": text})
}
