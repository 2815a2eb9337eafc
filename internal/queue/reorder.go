package queue

import (
	"fmt"
	"slices"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
	"backend-turnero/internal/store"
)

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// SwapAdjacent - Exchange the position values of the vessel at index and its
// neighbour in direction. Exactly two updates, or none at the boundary.
func SwapAdjacent(vessels []models.Vessel, index int, dir Direction) ([]store.Update, error) {
	if index < 0 || index >= len(vessels) {
		return nil, apperror.NewValidation("index", "range",
			fmt.Sprintf("índice %d fuera de rango (0-%d)", index, len(vessels)-1))
	}

	var neighbour int
	switch dir {
	case DirectionUp:
		neighbour = index - 1
	case DirectionDown:
		neighbour = index + 1
	default:
		return nil, apperror.NewValidation("direction", "oneof", "dirección debe ser up o down")
	}

	if neighbour < 0 || neighbour >= len(vessels) {
		return nil, nil
	}

	a, b := vessels[index], vessels[neighbour]
	return []store.Update{
		{ID: a.ID, Fields: store.Fields{}.WithPosition(b.Position)},
		{ID: b.ID, Fields: store.Fields{}.WithPosition(a.Position)},
	}, nil
}

// Reposition - Drag and drop. The dragged vessel is removed and reinserted
// at the target's original index, then every vessel is renumbered 1..N.
func Reposition(vessels []models.Vessel, draggedID, targetID string) ([]store.Update, error) {
	from := indexOf(vessels, draggedID)
	if from < 0 {
		return nil, fmt.Errorf("embarcación %s: %w", draggedID, apperror.ErrNotFound)
	}
	to := indexOf(vessels, targetID)
	if to < 0 {
		return nil, fmt.Errorf("embarcación %s: %w", targetID, apperror.ErrNotFound)
	}
	if from == to {
		return nil, nil
	}

	order := slices.Clone(vessels)
	dragged := order[from]
	order = slices.Delete(order, from, from+1)
	order = slices.Insert(order, min(to, len(order)), dragged)

	return renumber(order), nil
}

func renumber(order []models.Vessel) []store.Update {
	updates := make([]store.Update, len(order))
	for i, v := range order {
		updates[i] = store.Update{ID: v.ID, Fields: store.Fields{}.WithPosition(i + 1)}
	}
	return updates
}
