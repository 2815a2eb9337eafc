package models

import "time"

// Reservation - Pre-booked trip, looked up by customer document on the day
// of service. Used flips false -> true exactly once.
type Reservation struct {
	ID          string     `json:"id"`
	Document    string     `json:"documento"`
	Name        string     `json:"nombre"`
	Company     string     `json:"empresa"`
	Passengers  int        `json:"pasajeros"`
	DepartureAt time.Time  `json:"fecha_hora_salida"`
	ServiceDate string     `json:"fecha"` // YYYY-MM-DD, dock timezone
	Used        bool       `json:"usado"`
	UsedAt      *time.Time `json:"fecha_uso,omitempty"`
}

// Sale - Ticket sold at the counter. Category and price can only change on
// the calendar day of the sale.
type Sale struct {
	ID        string    `json:"id"`
	Document  string    `json:"documento"`
	Name      string    `json:"nombre"`
	SaleDate  string    `json:"fecha"` // YYYY-MM-DD, dock timezone
	Adults    int       `json:"adultos"`
	Children  int       `json:"ninos"`
	Price     int64     `json:"precio"`
	Category  Category  `json:"embarcacion"`
	UpdatedAt time.Time `json:"fecha_actualizacion"`
}

type UpdateSaleCategoryRequest struct {
	Category string `json:"categoria" validate:"required"`
}
