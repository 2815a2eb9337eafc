package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDockClock_DayBoundaryIsLocal(t *testing.T) {
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	// 03:00 UTC on the 11th is still the 10th in Bogotá (UTC-5).
	c := FixedClock(time.Date(2026, 1, 11, 3, 0, 0, 0, time.UTC), loc)
	assert.Equal(t, "2026-01-10", c.Today())

	assert.True(t, c.SameDay(time.Date(2026, 1, 10, 14, 0, 0, 0, loc)))
	assert.False(t, c.SameDay(time.Date(2026, 1, 9, 23, 59, 0, 0, loc)))
}

func TestNewDockClock_BadZone(t *testing.T) {
	_, err := NewDockClock("Mars/Olympus")
	assert.Error(t, err)
}

func TestCheckRole(t *testing.T) {
	assert.NoError(t, CheckRole("admin", "admin", "visualizador"))
	assert.ErrorIs(t, CheckRole("otro", "admin"), ErrInvalidRole)
}
