package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pgportal/backend/internal/api/handler"
	"pgportal/backend/internal/assignment"
	"pgportal/backend/internal/auth"
	"pgportal/backend/internal/chatbot"
	"pgportal/backend/internal/models"
	"pgportal/backend/internal/rent"
	"pgportal/backend/internal/storage"
)

// newTestServer wires the full stack over an in-memory sqlite database
// so handler tests exercise real storage and services end to end.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true, DisableForeignKeyConstraintWhenMigrating: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Complaint{},
		&models.RentRecord{},
	))

	store := storage.NewStorageService(db, nil)
	rentService := rent.NewService(store)
	assignService := assignment.NewService(store, rentService)
	responder := chatbot.NewResponder(store)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	router := gin.New()
	handler.NewHandler(store, rentService, assignService, responder, jwtManager).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, name, email, role string) (token, userID string) {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func TestRegisterAndLogin(t *testing.T) {
	router := newTestServer(t)

	// Register
	token, userID := registerUser(t, router, "Asha Verma", "asha@example.com", "tenant")
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, userID)

	// Duplicate registration is rejected.
	w := doJSON(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"name":     "Asha Verma",
		"email":    "asha@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "User already exists")

	// Weak passwords are rejected up front.
	w = doJSON(t, router, http.MethodPost, "/auth/register", "", gin.H{
		"name":     "Short",
		"email":    "short@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Login with the right password.
	w = doJSON(t, router, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "asha@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token")

	// Login with the wrong password.
	w = doJSON(t, router, http.MethodPost, "/auth/login", "", gin.H{
		"email":    "asha@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Credentials")
}

func TestRoomAssignmentFlow(t *testing.T) {
	router := newTestServer(t)

	ownerToken, _ := registerUser(t, router, "Ramesh Kumar", "owner@example.com", "owner")
	tenantToken, tenantID := registerUser(t, router, "Asha Verma", "asha@example.com", "tenant")

	// Owner creates a room.
	w := doJSON(t, router, http.MethodPost, "/portal/rooms", ownerToken, gin.H{
		"room_number": "101",
		"type":        "single",
		"rent_amount": 9000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var room models.Room
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &room))

	// A tenant cannot create rooms.
	w = doJSON(t, router, http.MethodPost, "/portal/rooms", tenantToken, gin.H{
		"room_number": "102",
		"type":        "single",
		"rent_amount": 9000,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owner assigns the tenant.
	w = doJSON(t, router, http.MethodPut, "/portal/rooms/"+room.ID+"/assign", ownerToken, gin.H{
		"tenantId": tenantID,
		"action":   "assign",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), models.RoomOccupied)

	// Assignment provisions the current month's rent record, visible in
	// the tenant's history.
	w = doJSON(t, router, http.MethodGet, "/portal/rent/history", tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var records []models.RentRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	require.NotEmpty(t, records)

	// Pay the current month's record.
	current := models.MonthKey(time.Now())
	var target *models.RentRecord
	for i := range records {
		if records[i].Month == current {
			target = &records[i]
		}
	}
	require.NotNil(t, target)

	w = doJSON(t, router, http.MethodPut, "/portal/rent/pay", tenantToken, gin.H{
		"rentRecordId": target.ID,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Payment recorded")

	// Paying twice is a conflict.
	w = doJSON(t, router, http.MethodPut, "/portal/rent/pay", tenantToken, gin.H{
		"rentRecordId": target.ID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Owner unassigns; the room goes vacant.
	w = doJSON(t, router, http.MethodPut, "/portal/rooms/"+room.ID+"/assign", ownerToken, gin.H{
		"action": "unassign",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), models.RoomVacant)
}

func TestComplaintFlow(t *testing.T) {
	router := newTestServer(t)

	ownerToken, _ := registerUser(t, router, "Ramesh Kumar", "owner@example.com", "owner")
	tenantToken, _ := registerUser(t, router, "Asha Verma", "asha@example.com", "tenant")

	// Tenant files a complaint.
	w := doJSON(t, router, http.MethodPost, "/portal/complaints", tenantToken, gin.H{
		"issue":       "Leaking tap",
		"description": "The bathroom tap has been leaking for two days.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var complaint models.Complaint
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &complaint))
	assert.Equal(t, models.ComplaintPending, complaint.Status)

	// Tenant sees it in their own list.
	w = doJSON(t, router, http.MethodGet, "/portal/complaints/me", tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Leaking tap")

	// Owner resolves it.
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/portal/complaints/%s/status", complaint.ID), ownerToken, gin.H{
		"status":             models.ComplaintResolved,
		"resolution_details": "Plumber replaced the washer.",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), models.ComplaintResolved)

	// The owner list endpoint is gated.
	w = doJSON(t, router, http.MethodGet, "/portal/complaints", tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestChatEndpoint(t *testing.T) {
	router := newTestServer(t)

	tenantToken, _ := registerUser(t, router, "Asha Verma", "asha@example.com", "tenant")

	w := doJSON(t, router, http.MethodPost, "/portal/chat", tenantToken, gin.H{
		"message": "hello",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Hello Asha!")

	// No token means no chat.
	w = doJSON(t, router, http.MethodPost, "/portal/chat", "", gin.H{
		"message": "hello",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
