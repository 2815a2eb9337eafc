package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
)

func TestLoad_SortsByPosition(t *testing.T) {
	m := Load([]models.Vessel{vessel("c", 3, W), vessel("a", 1, W), vessel("b", 2, B)})

	snap := m.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{snap[0].ID, snap[1].ID, snap[2].ID})
	assert.Empty(t, m.Violations())
}

func TestLoad_Empty(t *testing.T) {
	m := Load(nil)

	assert.Equal(t, 0, m.Len())
	_, ok := m.BoardingVessel()
	assert.False(t, ok)
	_, ok = m.NextWaiting()
	assert.False(t, ok)
	assert.Equal(t, -1, m.IndexOf("a"))
}

func TestNextWaiting_SkipsBoarding(t *testing.T) {
	m := Load([]models.Vessel{vessel("a", 1, B), vessel("b", 2, W), vessel("c", 3, W)})

	next, ok := m.NextWaiting()
	require.True(t, ok)
	assert.Equal(t, "b", next.ID)

	boarding, ok := m.BoardingVessel()
	require.True(t, ok)
	assert.Equal(t, "a", boarding.ID)
}

func TestNextWaiting_DuplicatePositionFirstEncounteredWins(t *testing.T) {
	m := Load([]models.Vessel{vessel("x", 2, W), vessel("y", 2, W), vessel("z", 1, B)})

	next, ok := m.NextWaiting()
	require.True(t, ok)
	assert.Equal(t, "x", next.ID)

	require.Len(t, m.Violations(), 1)
	assert.Equal(t, apperror.ViolationDuplicatePosition, m.Violations()[0].Kind)
}

func TestBoardingVessel_MultipleToleratedFirstByPosition(t *testing.T) {
	m := Load([]models.Vessel{vessel("b", 2, B), vessel("a", 1, B), vessel("c", 3, W)})

	boarding, ok := m.BoardingVessel()
	require.True(t, ok)
	assert.Equal(t, "a", boarding.ID)

	require.Len(t, m.Violations(), 1)
	assert.Equal(t, apperror.ViolationMultipleBoarding, m.Violations()[0].Kind)
}

func TestSnapshot_IsACopy(t *testing.T) {
	m := Load([]models.Vessel{vessel("a", 1, W)})

	snap := m.Snapshot()
	snap[0].Status = B

	v, ok := m.Vessel("a")
	require.True(t, ok)
	assert.Equal(t, W, v.Status)
}
