package report

import (
	"context"
	"time"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/helper"
	"backend-turnero/internal/models"
	"backend-turnero/internal/store"
)

// MaxRangeDays bounds a single report request.
const MaxRangeDays = 366

type Service struct {
	store store.ReportStore
	clock *helper.DockClock
}

func NewService(s store.ReportStore, clock *helper.DockClock) *Service {
	return &Service{store: s, clock: clock}
}

// Departures - Totals, per-day and per-vessel breakdown for from..to.
// Empty bounds default to today in the dock timezone.
func (s *Service) Departures(ctx context.Context, from, to string) (*models.DepartureReport, error) {
	if from == "" {
		from = s.clock.Today()
	}
	if to == "" {
		to = from
	}

	start, err := time.Parse(helper.DateLayout, from)
	if err != nil {
		return nil, apperror.NewValidation("desde", "date", "desde debe tener formato AAAA-MM-DD")
	}
	end, err := time.Parse(helper.DateLayout, to)
	if err != nil {
		return nil, apperror.NewValidation("hasta", "date", "hasta debe tener formato AAAA-MM-DD")
	}
	if end.Before(start) {
		return nil, apperror.NewValidation("hasta", "gtefield", "hasta debe ser igual o posterior a desde")
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > MaxRangeDays {
		return nil, apperror.NewValidation("hasta", "max", "el rango no puede superar un año")
	}

	summary, err := s.store.DepartureTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	summary.Days = days
	summary.AvgPerDay = float64(summary.Departures) / float64(days)

	daily, err := s.store.DailyDepartures(ctx, from, to)
	if err != nil {
		return nil, err
	}
	vessels, err := s.store.VesselDepartures(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &models.DepartureReport{
		From:    from,
		To:      to,
		Summary: summary,
		Daily:   daily,
		Vessels: vessels,
	}, nil
}
