package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend-turnero/internal/models"
)

func addDeparture(t *testing.T, s *SQLStore, id, vesselID, name string, pax int, total float64, day string) {
	t.Helper()
	require.NoError(t, s.AddDeparture(context.Background(), models.Departure{
		ID:             id,
		VesselID:       vesselID,
		VesselName:     name,
		PassengerCount: pax,
		TotalPrice:     total,
		PricePerPerson: total / float64(pax),
		Operator:       "admin@muelle.co",
		CreatedAt:      time.Now(),
	}, day))
}

func TestDepartureReport_Aggregates(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	addDeparture(t, s, "z1", "a", "Aqua sport", 4, 200000, "2026-01-10")
	addDeparture(t, s, "z2", "b", "Timon", 2, 60000, "2026-01-10")
	addDeparture(t, s, "z3", "a", "Aqua sport", 3, 90000, "2026-01-11")
	addDeparture(t, s, "z4", "b", "Timon", 5, 150000, "2026-01-20")

	sum, err := s.DepartureTotals(ctx, "2026-01-10", "2026-01-11")
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Departures)
	assert.Equal(t, 9, sum.Passengers)
	assert.Equal(t, 350000.0, sum.Revenue)

	daily, err := s.DailyDepartures(ctx, "2026-01-10", "2026-01-11")
	require.NoError(t, err)
	require.Len(t, daily, 2)
	assert.Equal(t, "2026-01-10", daily[0].Date)
	assert.Equal(t, 2, daily[0].Departures)
	assert.Equal(t, 6, daily[0].Passengers)

	vessels, err := s.VesselDepartures(ctx, "2026-01-10", "2026-01-11")
	require.NoError(t, err)
	require.Len(t, vessels, 2)
	assert.Equal(t, "Aqua sport", vessels[0].Name)
	assert.Equal(t, 2, vessels[0].Departures)
	assert.Equal(t, 290000.0, vessels[0].Revenue)
}

func TestDepartureReport_EmptyRange(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	sum, err := s.DepartureTotals(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Zero(t, sum.Departures)
	assert.Zero(t, sum.Revenue)

	daily, err := s.DailyDepartures(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Empty(t, daily)
}
