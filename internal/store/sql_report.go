package store

import (
	"context"
	"fmt"

	"backend-turnero/internal/models"
)

/*
|--------------------------------------------------------------------------
| DEPARTURE REPORT
|--------------------------------------------------------------------------
| service_date is stored as YYYY-MM-DD so BETWEEN compares lexically on
| both drivers.
*/

func (s *SQLStore) DepartureTotals(ctx context.Context, from, to string) (models.ReportSummary, error) {
	var sum models.ReportSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(passenger_count), 0), COALESCE(SUM(total_price), 0)
		FROM departures
		WHERE service_date BETWEEN ? AND ?
	`, from, to).Scan(&sum.Departures, &sum.Passengers, &sum.Revenue)
	if err != nil {
		return sum, fmt.Errorf("departure totals: %w", err)
	}
	return sum, nil
}

func (s *SQLStore) DailyDepartures(ctx context.Context, from, to string) ([]models.DailyDepartures, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT service_date, COUNT(*), SUM(passenger_count), SUM(total_price)
		FROM departures
		WHERE service_date BETWEEN ? AND ?
		GROUP BY service_date
		ORDER BY service_date ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily departures: %w", err)
	}
	defer rows.Close()

	list := []models.DailyDepartures{}
	for rows.Next() {
		var d models.DailyDepartures
		if err := rows.Scan(&d.Date, &d.Departures, &d.Passengers, &d.Revenue); err != nil {
			return nil, fmt.Errorf("scan daily departures: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func (s *SQLStore) VesselDepartures(ctx context.Context, from, to string) ([]models.VesselDepartures, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT vessel_id, vessel_name, COUNT(*) AS total, SUM(passenger_count), SUM(total_price)
		FROM departures
		WHERE service_date BETWEEN ? AND ?
		GROUP BY vessel_id, vessel_name
		ORDER BY total DESC, vessel_name ASC
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("vessel departures: %w", err)
	}
	defer rows.Close()

	list := []models.VesselDepartures{}
	for rows.Next() {
		var v models.VesselDepartures
		if err := rows.Scan(&v.VesselID, &v.Name, &v.Departures, &v.Passengers, &v.Revenue); err != nil {
			return nil, fmt.Errorf("scan vessel departures: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
