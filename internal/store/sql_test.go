package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
)

func newTestStore(t *testing.T) (*SQLStore, *LocalNotifier) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(context.Background(), db))

	notifier := NewLocalNotifier()
	return NewSQLStore(db, notifier), notifier
}

func seedVessels(t *testing.T, s *SQLStore, names ...string) []models.Vessel {
	t.Helper()

	vessels := make([]models.Vessel, len(names))
	for i, name := range names {
		vessels[i] = models.Vessel{
			ID:          name,
			DisplayName: name,
			Position:    i + 1,
			Status:      models.StatusWaiting,
		}
	}
	require.NoError(t, s.InsertMany(context.Background(), vessels))
	return vessels
}

func TestFetchAllOrdered(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	seedVessels(t, s, "a", "b", "c")

	require.NoError(t, s.UpdateOne(ctx, "a", Fields{}.WithPosition(9)))

	got, err := s.FetchAllOrdered(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "c", "a"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, models.StatusWaiting, got[0].Status)
}

func TestFetchAllOrdered_Empty(t *testing.T) {
	s, _ := newTestStore(t)

	got, err := s.FetchAllOrdered(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBatchUpdate_SwapThroughDuplicate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	seedVessels(t, s, "a", "b")

	err := s.BatchUpdate(ctx, []Update{
		{ID: "a", Fields: Fields{}.WithPosition(2)},
		{ID: "b", Fields: Fields{}.WithPosition(1)},
	})
	require.NoError(t, err)

	got, err := s.FetchAllOrdered(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, 1, got[0].Position)
	assert.Equal(t, "a", got[1].ID)
	assert.Equal(t, 2, got[1].Position)
}

func TestBatchUpdate_UnknownIDRollsBack(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	seedVessels(t, s, "a", "b")

	err := s.BatchUpdate(ctx, []Update{
		{ID: "a", Fields: Fields{}.WithStatus(models.StatusBoarding)},
		{ID: "ghost", Fields: Fields{}.WithStatus(models.StatusWaiting)},
	})
	require.ErrorIs(t, err, apperror.ErrNotFound)

	got, err := s.FetchAllOrdered(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.StatusWaiting, got[0].Status, "first update must be rolled back")
}

func TestBatchUpdate_EmptyIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	assert.NoError(t, s.BatchUpdate(context.Background(), nil))
}

func TestUpdateOne_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.UpdateOne(context.Background(), "ghost", Fields{}.WithStatus(models.StatusBoarding))
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestSubscribe_InitialSnapshotThenChanges(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	seedVessels(t, s, "a", "b")

	snapshots := make(chan []models.Vessel, 8)
	unsubscribe, err := s.Subscribe(ctx, func(v []models.Vessel) { snapshots <- v }, nil)
	require.NoError(t, err)
	defer unsubscribe()

	select {
	case first := <-snapshots:
		assert.Len(t, first, 2)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}

	require.NoError(t, s.UpdateOne(ctx, "b", Fields{}.WithStatus(models.StatusBoarding)))

	require.Eventually(t, func() bool {
		select {
		case v := <-snapshots:
			return len(v) == 2 && v[1].Status == models.StatusBoarding
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDepartures_ListByDay(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	d := models.Departure{
		ID:                "z1",
		VesselID:          "a",
		VesselName:        "Aqua sport",
		DischargePosition: 3,
		PassengerCount:    4,
		TotalPrice:        100000,
		PricePerPerson:    25000,
		Operator:          "admin@muelle.co",
		CreatedAt:         time.Now(),
	}
	require.NoError(t, s.AddDeparture(ctx, d, "2026-01-10"))

	today, err := s.ListDepartures(ctx, "2026-01-10")
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, 3, today[0].DischargePosition)
	assert.Equal(t, 25000.0, today[0].PricePerPerson)

	other, err := s.ListDepartures(ctx, "2026-01-11")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestHistory_NewestFirst(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	require.NoError(t, s.AddHistory(ctx, models.HistoryEntry{
		ID: "h1", Kind: models.HistoryReset, Details: map[string]any{}, Actor: "x", CreatedAt: base,
	}))
	require.NoError(t, s.AddHistory(ctx, models.HistoryEntry{
		ID: "h2", Kind: models.HistoryNextTurn, Details: map[string]any{"embarcacion": "a"}, Actor: "x", CreatedAt: base.Add(time.Minute),
	}))

	list, err := s.ListHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "h2", list[0].ID)
	assert.Equal(t, "a", list[0].Details["embarcacion"])
}

func insertReservation(t *testing.T, s *SQLStore, id, doc, day string) {
	t.Helper()
	_, err := s.db.Exec(`
		INSERT INTO reservations (id, document, name, company, passengers, departure_at, service_date, used)
		VALUES (?, ?, 'Ana', 'Aqua sport', 4, ?, ?, ?)
	`, id, doc, time.Now().UTC(), day, false)
	require.NoError(t, err)
}

func TestMarkReservationUsed_FlipsOnce(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	insertReservation(t, s, "r1", "1001", "2026-01-10")

	flipped, err := s.MarkReservationUsed(ctx, "r1", time.Now())
	require.NoError(t, err)
	assert.True(t, flipped)

	flipped, err = s.MarkReservationUsed(ctx, "r1", time.Now())
	require.NoError(t, err)
	assert.False(t, flipped)

	r, err := s.GetReservation(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, r.Used)
	assert.NotNil(t, r.UsedAt)
}

func TestFindReservation_OtherDayNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	insertReservation(t, s, "r1", "1001", "2026-01-09")

	_, err := s.FindReservation(context.Background(), "1001", "2026-01-10")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateSaleCategory_GuardedByDay(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	_, err := s.db.Exec(`
		INSERT INTO sales (id, document, name, sale_date, adults, children, price, category, updated_at)
		VALUES ('s1', '2002', 'Luis', '2026-01-10', 4, 1, 250000, 'Deportiva', ?)
	`, time.Now().UTC())
	require.NoError(t, err)

	sale, err := s.FindSale(ctx, "2002", "2026-01-10")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryDeportiva, sale.Category)

	err = s.UpdateSaleCategory(ctx, "s1", "2026-01-11", models.CategoryYate, 400000, time.Now())
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, s.UpdateSaleCategory(ctx, "s1", "2026-01-10", models.CategoryYate, 400000, time.Now()))
	sale, err = s.GetSale(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryYate, sale.Category)
	assert.Equal(t, int64(400000), sale.Price)
}

func TestUsers_FindByEmail(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.FindUserByEmail(ctx, "nadie@muelle.co")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, s.CreateUser(ctx, models.User{
		ID: "u1", Name: "Operador", Email: "op@muelle.co", PasswordHash: "x", Role: models.RoleAdmin,
	}))
	u, err := s.FindUserByEmail(ctx, "op@muelle.co")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, u.Role)
}
