package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/helper"
	"backend-turnero/internal/models"
)

type fakeStore struct {
	reservations map[string]*models.Reservation
	sales        map[string]*models.Sale

	markFn   func(id string) (bool, error)
	updateFn func(id string) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reservations: map[string]*models.Reservation{},
		sales:        map[string]*models.Sale{},
	}
}

func (f *fakeStore) FindReservation(_ context.Context, doc, day string) (*models.Reservation, error) {
	for _, r := range f.reservations {
		if r.Document == doc && r.ServiceDate == day {
			c := *r
			return &c, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeStore) GetReservation(_ context.Context, id string) (*models.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	c := *r
	return &c, nil
}

func (f *fakeStore) MarkReservationUsed(_ context.Context, id string, at time.Time) (bool, error) {
	if f.markFn != nil {
		return f.markFn(id)
	}
	r, ok := f.reservations[id]
	if !ok || r.Used {
		return false, nil
	}
	r.Used = true
	r.UsedAt = &at
	return true, nil
}

func (f *fakeStore) FindSale(_ context.Context, doc, day string) (*models.Sale, error) {
	for _, s := range f.sales {
		if s.Document == doc && s.SaleDate == day {
			c := *s
			return &c, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeStore) GetSale(_ context.Context, id string) (*models.Sale, error) {
	s, ok := f.sales[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	c := *s
	return &c, nil
}

func (f *fakeStore) UpdateSaleCategory(_ context.Context, id, day string, c models.Category, price int64, at time.Time) error {
	if f.updateFn != nil {
		return f.updateFn(id)
	}
	s, ok := f.sales[id]
	if !ok || s.SaleDate != day {
		return apperror.ErrNotFound
	}
	s.Category, s.Price, s.UpdatedAt = c, price, at
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	clock := helper.FixedClock(time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC), loc)
	f := newFakeStore()
	return NewService(f, clock), f
}

func TestMarkUsed_DoubleUseIsDistinct(t *testing.T) {
	svc, f := newTestService(t)
	f.reservations["r1"] = &models.Reservation{ID: "r1", Document: "1001", Name: "Ana", ServiceDate: "2026-03-14"}
	ctx := context.Background()

	r, err := svc.MarkUsed(ctx, "r1")
	require.NoError(t, err)
	assert.True(t, r.Used)

	_, err = svc.MarkUsed(ctx, "r1")
	assert.ErrorIs(t, err, apperror.ErrAlreadyUsed)
	assert.NotErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.MarkUsed(ctx, "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.NotErrorIs(t, err, apperror.ErrAlreadyUsed)
}

func TestMarkUsed_StoreFailure(t *testing.T) {
	svc, f := newTestService(t)
	f.markFn = func(string) (bool, error) { return false, errors.New("timeout") }

	_, err := svc.MarkUsed(context.Background(), "r1")
	var swe *apperror.StoreWriteError
	assert.ErrorAs(t, err, &swe)
}

func TestFindReservation(t *testing.T) {
	svc, f := newTestService(t)
	f.reservations["r1"] = &models.Reservation{ID: "r1", Document: "1001", ServiceDate: "2026-03-14", Used: true}

	r, err := svc.FindReservation(context.Background(), " 1001 ")
	require.NoError(t, err)
	assert.True(t, r.Used)

	_, err = svc.FindReservation(context.Background(), "")
	var verr *apperror.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestFindSale_YesterdayIsNotFound(t *testing.T) {
	svc, f := newTestService(t)
	f.sales["s1"] = &models.Sale{ID: "s1", Document: "2002", SaleDate: "2026-03-13", Adults: 4, Category: models.CategoryDeportiva}
	ctx := context.Background()

	_, err := svc.FindSale(ctx, "2002")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = svc.UpdateSaleCategory(ctx, "s1", "yate")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, models.CategoryDeportiva, f.sales["s1"].Category)
}

func TestUpdateSaleCategory(t *testing.T) {
	svc, f := newTestService(t)
	f.sales["s1"] = &models.Sale{
		ID: "s1", Document: "2002", SaleDate: "2026-03-14",
		Adults: 4, Children: 2, Price: 250000, Category: models.CategoryDeportiva,
	}
	ctx := context.Background()

	preview, err := svc.PreviewCategoryChange(ctx, "s1", "Yate")
	require.NoError(t, err)
	assert.Equal(t, int64(400000), preview.New)
	assert.Equal(t, int64(150000), preview.Difference)
	assert.Equal(t, models.CategoryDeportiva, f.sales["s1"].Category, "preview must not write")

	change, err := svc.UpdateSaleCategory(ctx, "s1", "yate")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryYate, change.Sale.Category)
	assert.Equal(t, int64(400000), f.sales["s1"].Price)

	_, err = svc.UpdateSaleCategory(ctx, "s1", "yate")
	var verr *apperror.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "changed", verr.Rule)

	_, err = svc.UpdateSaleCategory(ctx, "s1", "submarino")
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "oneof", verr.Rule)
}

func TestUpdateSaleCategory_StoreFailure(t *testing.T) {
	svc, f := newTestService(t)
	f.sales["s1"] = &models.Sale{ID: "s1", SaleDate: "2026-03-14", Adults: 2, Category: models.CategoryLanchaTaxi}
	f.updateFn = func(string) error { return errors.New("connection reset") }

	_, err := svc.UpdateSaleCategory(context.Background(), "s1", "barco")
	var swe *apperror.StoreWriteError
	assert.ErrorAs(t, err, &swe)
}
