package models

import "time"

type VesselStatus string

const (
	StatusWaiting  VesselStatus = "EN TURNO"
	StatusBoarding VesselStatus = "EMBARCANDO"
	StatusReserved VesselStatus = "RESERVA"
)

func (s VesselStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusBoarding, StatusReserved:
		return true
	}
	return false
}

// Vessel - One jetski/boat in the dock turn queue.
// Position is 1-based and defines service order (ascending).
type Vessel struct {
	ID          string       `json:"id"`
	DisplayName string       `json:"nombre"`
	Position    int          `json:"posicion"`
	Status      VesselStatus `json:"estado"`
	Category    Category     `json:"categoria,omitempty"`
	UpdatedAt   time.Time    `json:"fecha_actualizacion"`
}

type SwapRequest struct {
	Index     int    `json:"index" validate:"min=0"`
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type RepositionRequest struct {
	DraggedID string `json:"dragged_id" validate:"required"`
	TargetID  string `json:"target_id" validate:"required"`
}

type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

type UpdateStatusRequest struct {
	Status VesselStatus `json:"estado" validate:"required"`
}
