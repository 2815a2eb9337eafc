package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
)

func statuses(vessels []models.Vessel) []models.VesselStatus {
	out := make([]models.VesselStatus, len(vessels))
	for i, v := range vessels {
		out[i] = v.Status
	}
	return out
}

func boardingCount(vessels []models.Vessel) int {
	n := 0
	for _, v := range vessels {
		if v.Status == B {
			n++
		}
	}
	return n
}

func TestAdvance_Determinism(t *testing.T) {
	vessels := []models.Vessel{vessel("1", 1, W), vessel("2", 2, B), vessel("3", 3, W)}

	updates, candidate := Advance(vessels)
	require.NotNil(t, candidate)
	assert.Equal(t, "1", candidate.ID)
	assert.Len(t, updates, 3)

	assert.Equal(t, []models.VesselStatus{B, W, W}, statuses(apply(vessels, updates)))
}

func TestAdvance_NoWaitingOnlyClears(t *testing.T) {
	vessels := []models.Vessel{vessel("1", 1, B)}

	updates, candidate := Advance(vessels)
	assert.Nil(t, candidate)
	assert.Equal(t, []models.VesselStatus{W}, statuses(apply(vessels, updates)))
}

func TestAdvance_Empty(t *testing.T) {
	updates, candidate := Advance(nil)
	assert.Empty(t, updates)
	assert.Nil(t, candidate)
}

func TestResetAll(t *testing.T) {
	vessels := []models.Vessel{vessel("1", 1, B), vessel("2", 2, R), vessel("3", 3, W)}

	got := apply(vessels, ResetAll(vessels))
	assert.Equal(t, []models.VesselStatus{W, W, W}, statuses(got))
}

func TestSetStatus_BoardingDemotesOthers(t *testing.T) {
	vessels := []models.Vessel{vessel("1", 1, B), vessel("2", 2, W), vessel("3", 3, W)}

	updates, err := SetStatus(vessels, "3", B)
	require.NoError(t, err)
	require.Len(t, updates, 2)

	got := apply(vessels, updates)
	assert.Equal(t, []models.VesselStatus{W, W, B}, statuses(got))
}

func TestSetStatus_Errors(t *testing.T) {
	vessels := []models.Vessel{vessel("1", 1, W)}

	_, err := SetStatus(vessels, "ghost", B)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = SetStatus(vessels, "1", models.VesselStatus("VOLANDO"))
	var verr *apperror.ValidationError
	assert.ErrorAs(t, err, &verr)

	updates, err := SetStatus(vessels, "1", W)
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestAfterDeparture_BoardingPromotesNext(t *testing.T) {
	vessels := []models.Vessel{vessel("a", 1, B), vessel("b", 2, W), vessel("c", 3, W)}

	updates, promoted, err := AfterDeparture(vessels, "a", B)
	require.NoError(t, err)
	require.NotNil(t, promoted)
	assert.Equal(t, "b", promoted.ID)

	got := apply(vessels, updates)
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
	assert.Equal(t, []models.VesselStatus{B, W, W}, statuses(got))
	assert.Equal(t, map[string]int{"b": 1, "c": 2, "a": 3}, positions(got))
}

func TestAfterDeparture_ReservedLeavesBoardingAlone(t *testing.T) {
	vessels := []models.Vessel{vessel("a", 1, B), vessel("b", 2, R), vessel("c", 3, W)}

	updates, promoted, err := AfterDeparture(vessels, "b", R)
	require.NoError(t, err)
	assert.Nil(t, promoted)

	got := apply(vessels, updates)
	assert.Equal(t, []string{"a", "c", "b"}, ids(got))
	assert.Equal(t, []models.VesselStatus{B, W, W}, statuses(got))
	assert.Equal(t, 1, boardingCount(got))
}

func TestAfterDeparture_BoardingWithNobodyWaiting(t *testing.T) {
	vessels := []models.Vessel{vessel("a", 1, B), vessel("b", 2, R)}

	updates, promoted, err := AfterDeparture(vessels, "a", B)
	require.NoError(t, err)
	assert.Nil(t, promoted)

	got := apply(vessels, updates)
	assert.Equal(t, []models.VesselStatus{R, W}, statuses(got))
	assert.Equal(t, 0, boardingCount(got))
}

func TestAfterDeparture_Unknown(t *testing.T) {
	_, _, err := AfterDeparture([]models.Vessel{vessel("a", 1, B)}, "ghost", B)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
