package models

import "time"

// Departure - Zarpe record. Built once per departure action and never
// modified afterwards, whether or not the queue reorganization succeeds.
type Departure struct {
	ID                string    `json:"id"`
	VesselID          string    `json:"embarcacion_id"`
	VesselName        string    `json:"embarcacion"`
	Category          Category  `json:"categoria"`
	DischargePosition int       `json:"posicion_desembarque"`
	PassengerCount    int       `json:"cantidad_pasajeros"`
	TotalPrice        float64   `json:"valor_total"`
	PricePerPerson    float64   `json:"valor_por_persona"`
	Operator          string    `json:"administrador"`
	CreatedAt         time.Time `json:"fecha_hora"`
}

type CreateDepartureRequest struct {
	VesselID       string  `json:"embarcacion_id"`
	PassengerCount int     `json:"cantidad_pasajeros"`
	TotalPrice     float64 `json:"valor_total"`
}

// DepartureReport - Aggregates over service dates From..To (inclusive).
type DepartureReport struct {
	From    string             `json:"desde"`
	To      string             `json:"hasta"`
	Summary ReportSummary      `json:"resumen"`
	Daily   []DailyDepartures  `json:"por_dia"`
	Vessels []VesselDepartures `json:"por_embarcacion"`
}

type ReportSummary struct {
	Departures int     `json:"total_zarpes"`
	Passengers int     `json:"total_pasajeros"`
	Revenue    float64 `json:"total_recaudado"`
	AvgPerDay  float64 `json:"promedio_por_dia"`
	Days       int     `json:"dias"`
}

type DailyDepartures struct {
	Date       string  `json:"fecha"`
	Departures int     `json:"zarpes"`
	Passengers int     `json:"pasajeros"`
	Revenue    float64 `json:"recaudado"`
}

type VesselDepartures struct {
	VesselID   string  `json:"embarcacion_id"`
	Name       string  `json:"embarcacion"`
	Departures int     `json:"zarpes"`
	Passengers int     `json:"pasajeros"`
	Revenue    float64 `json:"recaudado"`
}
