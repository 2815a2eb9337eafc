package queue

import (
	"fmt"
	"slices"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
	"backend-turnero/internal/store"
)

// Advance - Every vessel goes to WAITING and the first WAITING vessel of the
// pre-update snapshot becomes BOARDING. A nil candidate means nobody was
// waiting and the batch only clears.
func Advance(vessels []models.Vessel) ([]store.Update, *models.Vessel) {
	var candidate *models.Vessel
	for i := range vessels {
		if vessels[i].Status == models.StatusWaiting {
			c := vessels[i]
			candidate = &c
			break
		}
	}

	updates := make([]store.Update, len(vessels))
	for i, v := range vessels {
		status := models.StatusWaiting
		if candidate != nil && v.ID == candidate.ID {
			status = models.StatusBoarding
		}
		updates[i] = store.Update{ID: v.ID, Fields: store.Fields{}.WithStatus(status)}
	}
	return updates, candidate
}

// ResetAll - Every vessel to WAITING, unconditionally.
func ResetAll(vessels []models.Vessel) []store.Update {
	updates := make([]store.Update, len(vessels))
	for i, v := range vessels {
		updates[i] = store.Update{ID: v.ID, Fields: store.Fields{}.WithStatus(models.StatusWaiting)}
	}
	return updates
}

// SetStatus - Manual status toggle. Setting BOARDING demotes any other
// BOARDING vessel in the same batch. Unchanged status gives no updates.
func SetStatus(vessels []models.Vessel, id string, status models.VesselStatus) ([]store.Update, error) {
	if !status.Valid() {
		return nil, apperror.NewValidation("estado", "oneof", fmt.Sprintf("estado inválido: %q", status))
	}

	i := indexOf(vessels, id)
	if i < 0 {
		return nil, fmt.Errorf("embarcación %s: %w", id, apperror.ErrNotFound)
	}
	if vessels[i].Status == status {
		return nil, nil
	}

	updates := []store.Update{{ID: id, Fields: store.Fields{}.WithStatus(status)}}
	if status != models.StatusBoarding {
		return updates, nil
	}

	for _, v := range vessels {
		if v.ID != id && v.Status == models.StatusBoarding {
			updates = append(updates, store.Update{ID: v.ID, Fields: store.Fields{}.WithStatus(models.StatusWaiting)})
		}
	}
	return updates, nil
}

// AfterDeparture - Send the departed vessel to the tail as WAITING and
// renumber. When it was BOARDING the next WAITING vessel takes its place;
// when it was RESERVED the rest of the queue keeps its statuses.
func AfterDeparture(vessels []models.Vessel, id string, prior models.VesselStatus) ([]store.Update, *models.Vessel, error) {
	from := indexOf(vessels, id)
	if from < 0 {
		return nil, nil, fmt.Errorf("embarcación %s: %w", id, apperror.ErrNotFound)
	}

	departed := vessels[from]
	order := slices.Delete(slices.Clone(vessels), from, from+1)

	var promoted *models.Vessel
	if prior == models.StatusBoarding {
		for i := range order {
			if order[i].Status == models.StatusWaiting {
				p := order[i]
				promoted = &p
				break
			}
		}
	}

	updates := make([]store.Update, 0, len(vessels))
	for i, v := range order {
		f := store.Fields{}.WithPosition(i + 1)
		if prior == models.StatusBoarding {
			switch {
			case promoted != nil && v.ID == promoted.ID:
				f = f.WithStatus(models.StatusBoarding)
			case v.Status == models.StatusBoarding:
				f = f.WithStatus(models.StatusWaiting)
			}
		}
		updates = append(updates, store.Update{ID: v.ID, Fields: f})
	}
	updates = append(updates, store.Update{
		ID:     departed.ID,
		Fields: store.Fields{}.WithPosition(len(vessels)).WithStatus(models.StatusWaiting),
	})

	return updates, promoted, nil
}
