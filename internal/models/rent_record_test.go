package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pgportal/backend/internal/models"
)

// TestMonthKey verifies the billing period key format, including
// zero-padded months.
func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-11", models.MonthKey(time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-01", models.MonthKey(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-09", models.MonthKey(time.Date(2025, time.September, 5, 12, 30, 0, 0, time.UTC)))
}
