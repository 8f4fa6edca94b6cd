package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pgportal/backend/internal/api/middleware"
	"pgportal/backend/internal/assignment"
	"pgportal/backend/internal/auth"
	"pgportal/backend/internal/chatbot"
	"pgportal/backend/internal/rent"
	"pgportal/backend/internal/storage"
)

// Handler holds the services backing the HTTP surface.
type Handler struct {
	Storage storage.Storage
	Rent    *rent.Service
	Assign  *assignment.Service
	Chat    *chatbot.Responder
	JWT     *auth.JWTManager
}

func NewHandler(s storage.Storage, r *rent.Service, a *assignment.Service, c *chatbot.Responder, jwt *auth.JWTManager) *Handler {
	return &Handler{Storage: s, Rent: r, Assign: a, Chat: c, JWT: jwt}
}

// RegisterRoutes wires the full route table onto the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	portal := r.Group("/portal", middleware.RequireAuth(h.JWT))
	{
		portal.GET("/me", h.Me)
		portal.PUT("/me", h.UpdateMe)

		portal.POST("/chat", h.ChatMessage)

		portal.POST("/rent/reminder-text", h.RentReminderText)
		portal.PUT("/rent/pay", h.PayRent)
		portal.GET("/rent/history", h.RentHistory)

		portal.POST("/complaints", h.CreateComplaint)
		portal.GET("/complaints/me", h.MyComplaints)
		portal.DELETE("/complaints/:id", h.DeleteComplaint)

		owner := portal.Group("", middleware.OwnerOnly())
		{
			owner.GET("/rent/summary", h.RentSummary)
			owner.GET("/tenant-list", h.TenantList)
			owner.DELETE("/tenants/:id", h.DeleteTenant)

			owner.POST("/rooms", h.CreateRoom)
			owner.GET("/rooms/all", h.ListRooms)
			owner.PUT("/rooms/:id/assign", h.AssignRoom)

			owner.GET("/complaints", h.ListComplaints)
			owner.PUT("/complaints/:id/status", h.UpdateComplaintStatus)
		}
	}
}
