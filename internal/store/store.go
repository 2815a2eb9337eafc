// Package store is the system of record for the dock board. The core
// packages depend only on the interfaces declared here; SQLStore is the
// MySQL/SQLite implementation.
package store

import (
	"context"
	"time"

	"backend-turnero/internal/models"
)

// TopicVessels - Notification topic published after every committed vessel write.
const TopicVessels = "vessels"

// Fields - Attributes of a vessel that a single update may change. Nil
// means "leave as is"; updated_at is always refreshed.
type Fields struct {
	Position *int
	Status   *models.VesselStatus
}

func (f Fields) WithPosition(p int) Fields {
	f.Position = &p
	return f
}

func (f Fields) WithStatus(s models.VesselStatus) Fields {
	f.Status = &s
	return f
}

func (f Fields) Empty() bool {
	return f.Position == nil && f.Status == nil
}

type Update struct {
	ID     string
	Fields Fields
}

// VesselStore - Ordered vessel records with push notification and an
// all-or-nothing multi-record write.
type VesselStore interface {
	FetchAllOrdered(ctx context.Context) ([]models.Vessel, error)
	Subscribe(ctx context.Context, onChange func([]models.Vessel), onError func(error)) (func(), error)
	BatchUpdate(ctx context.Context, updates []Update) error
	UpdateOne(ctx context.Context, id string, fields Fields) error
	InsertMany(ctx context.Context, vessels []models.Vessel) error
}

type DepartureStore interface {
	AddDeparture(ctx context.Context, d models.Departure, serviceDate string) error
	ListDepartures(ctx context.Context, serviceDate string) ([]models.Departure, error)
}

// ReportStore - Read-only aggregates over departures. Dates are inclusive
// YYYY-MM-DD service dates.
type ReportStore interface {
	DepartureTotals(ctx context.Context, from, to string) (models.ReportSummary, error)
	DailyDepartures(ctx context.Context, from, to string) ([]models.DailyDepartures, error)
	VesselDepartures(ctx context.Context, from, to string) ([]models.VesselDepartures, error)
}

type HistoryStore interface {
	AddHistory(ctx context.Context, entry models.HistoryEntry) error
	ListHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error)
}

type BookingStore interface {
	FindReservation(ctx context.Context, document, serviceDate string) (*models.Reservation, error)
	GetReservation(ctx context.Context, id string) (*models.Reservation, error)
	MarkReservationUsed(ctx context.Context, id string, at time.Time) (bool, error)
	FindSale(ctx context.Context, document, saleDate string) (*models.Sale, error)
	GetSale(ctx context.Context, id string) (*models.Sale, error)
	UpdateSaleCategory(ctx context.Context, id, saleDate string, category models.Category, price int64, at time.Time) error
}

type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u models.User) error
}
