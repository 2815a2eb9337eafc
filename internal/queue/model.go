// Package queue holds the dock turn board: the in-memory ordered model, the
// pure reordering and advancement rules, and the Board service that applies
// them through the store.
package queue

import (
	"fmt"
	"slices"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
)

// Model - Ordered snapshot of the vessels as last delivered by the store.
// Rebuilt wholesale on every notification, never patched.
type Model struct {
	vessels    []models.Vessel
	violations []*apperror.InvariantViolation
}

// Load - Copy and stable-sort by position. Empty input gives an empty model.
func Load(vessels []models.Vessel) *Model {
	sorted := slices.Clone(vessels)
	slices.SortStableFunc(sorted, func(a, b models.Vessel) int {
		return a.Position - b.Position
	})

	m := &Model{vessels: sorted}
	m.violations = m.check()
	return m
}

func (m *Model) check() []*apperror.InvariantViolation {
	var out []*apperror.InvariantViolation

	boarding := 0
	seen := make(map[int]string, len(m.vessels))
	for _, v := range m.vessels {
		if v.Status == models.StatusBoarding {
			boarding++
		}
		if first, dup := seen[v.Position]; dup {
			out = append(out, &apperror.InvariantViolation{
				Kind:   apperror.ViolationDuplicatePosition,
				Detail: fmt.Sprintf("posicion %d: %s y %s", v.Position, first, v.DisplayName),
			})
			continue
		}
		seen[v.Position] = v.DisplayName
	}

	if boarding > 1 {
		out = append(out, &apperror.InvariantViolation{
			Kind:   apperror.ViolationMultipleBoarding,
			Detail: fmt.Sprintf("%d embarcaciones en %s", boarding, models.StatusBoarding),
		})
	}
	return out
}

func (m *Model) Len() int { return len(m.vessels) }

// Snapshot - Copy of the ordered sequence, safe to hand out.
func (m *Model) Snapshot() []models.Vessel {
	return slices.Clone(m.vessels)
}

// BoardingVessel - First BOARDING vessel by position. With more than one in
// the snapshot the first is authoritative.
func (m *Model) BoardingVessel() (models.Vessel, bool) {
	return m.first(models.StatusBoarding)
}

// NextWaiting - Head of the queue: first WAITING vessel in ascending order.
// Duplicate positions resolve to the first encountered.
func (m *Model) NextWaiting() (models.Vessel, bool) {
	return m.first(models.StatusWaiting)
}

func (m *Model) first(status models.VesselStatus) (models.Vessel, bool) {
	for _, v := range m.vessels {
		if v.Status == status {
			return v, true
		}
	}
	return models.Vessel{}, false
}

// IndexOf returns -1 when the id is not in the snapshot.
func (m *Model) IndexOf(id string) int {
	return indexOf(m.vessels, id)
}

func (m *Model) Vessel(id string) (models.Vessel, bool) {
	if i := m.IndexOf(id); i >= 0 {
		return m.vessels[i], true
	}
	return models.Vessel{}, false
}

func (m *Model) Violations() []*apperror.InvariantViolation {
	return m.violations
}

func indexOf(vessels []models.Vessel, id string) int {
	return slices.IndexFunc(vessels, func(v models.Vessel) bool { return v.ID == id })
}
