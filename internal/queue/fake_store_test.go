package queue

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
	"backend-turnero/internal/store"
)

// memStore - In-memory VesselStore that notifies subscribers synchronously.
// batchFn, when set, replaces the batch write so tests can inject failures.
type memStore struct {
	mu      sync.Mutex
	vessels []models.Vessel
	subs    []func([]models.Vessel)
	batches int

	batchFn func(updates []store.Update) error
}

func newMemStore(vessels ...models.Vessel) *memStore {
	return &memStore{vessels: vessels}
}

func (m *memStore) ordered() []models.Vessel {
	out := slices.Clone(m.vessels)
	slices.SortStableFunc(out, func(a, b models.Vessel) int { return a.Position - b.Position })
	return out
}

func (m *memStore) FetchAllOrdered(context.Context) ([]models.Vessel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ordered(), nil
}

func (m *memStore) Subscribe(_ context.Context, onChange func([]models.Vessel), _ func(error)) (func(), error) {
	m.mu.Lock()
	m.subs = append(m.subs, onChange)
	snap := m.ordered()
	m.mu.Unlock()

	onChange(snap)
	return func() {}, nil
}

func (m *memStore) BatchUpdate(_ context.Context, updates []store.Update) error {
	if m.batchFn != nil {
		if err := m.batchFn(updates); err != nil {
			return err
		}
	}

	m.mu.Lock()
	next := slices.Clone(m.vessels)
	for _, u := range updates {
		i := indexOf(next, u.ID)
		if i < 0 {
			m.mu.Unlock()
			return apperror.ErrNotFound
		}
		applyFields(&next[i], u.Fields)
	}
	m.vessels = next
	m.batches++
	m.mu.Unlock()

	m.notify()
	return nil
}

func (m *memStore) UpdateOne(ctx context.Context, id string, fields store.Fields) error {
	return m.BatchUpdate(ctx, []store.Update{{ID: id, Fields: fields}})
}

func (m *memStore) InsertMany(_ context.Context, vessels []models.Vessel) error {
	m.mu.Lock()
	m.vessels = append(m.vessels, vessels...)
	m.mu.Unlock()

	m.notify()
	return nil
}

func (m *memStore) notify() {
	m.mu.Lock()
	snap := m.ordered()
	subs := slices.Clone(m.subs)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func applyFields(v *models.Vessel, f store.Fields) {
	if f.Position != nil {
		v.Position = *f.Position
	}
	if f.Status != nil {
		v.Status = *f.Status
	}
	v.UpdatedAt = time.Now()
}

type memHistory struct {
	mu      sync.Mutex
	entries []models.HistoryEntry
	fail    bool
}

func (h *memHistory) AddHistory(_ context.Context, e models.HistoryEntry) error {
	if h.fail {
		return errors.New("history offline")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, e)
	return nil
}

func (h *memHistory) ListHistory(context.Context, int) ([]models.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries), nil
}

func vessel(id string, pos int, status models.VesselStatus) models.Vessel {
	return models.Vessel{ID: id, DisplayName: "Lancha " + id, Position: pos, Status: status}
}

const (
	W = models.StatusWaiting
	B = models.StatusBoarding
	R = models.StatusReserved
)
