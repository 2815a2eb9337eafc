package models

import "time"

type HistoryKind string

const (
	HistoryReorder     HistoryKind = "reorden"
	HistoryReorderDrag HistoryKind = "reorden_drag"
	HistoryNextTurn    HistoryKind = "siguiente_turno"
	HistoryReset       HistoryKind = "reset"
	HistoryStatus      HistoryKind = "cambio_estado"
	HistoryDeparture   HistoryKind = "zarpe"
)

type HistoryEntry struct {
	ID        string         `json:"id"`
	Kind      HistoryKind    `json:"tipo"`
	Details   map[string]any `json:"detalles"`
	Actor     string         `json:"usuario"`
	CreatedAt time.Time      `json:"fecha"`
}
