package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
)

/*
|--------------------------------------------------------------------------
| DEPARTURES (zarpes)
|--------------------------------------------------------------------------
*/

func (s *SQLStore) AddDeparture(ctx context.Context, d models.Departure, serviceDate string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO departures
		(id, vessel_id, vessel_name, category, discharge_position, passenger_count,
		 total_price, price_per_person, operator, service_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.VesselID, d.VesselName, string(d.Category), d.DischargePosition, d.PassengerCount,
		d.TotalPrice, d.PricePerPerson, d.Operator, serviceDate, d.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert departure: %w", err)
	}
	return nil
}

func (s *SQLStore) ListDepartures(ctx context.Context, serviceDate string) ([]models.Departure, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, vessel_id, vessel_name, category, discharge_position, passenger_count,
		       total_price, price_per_person, operator, created_at
		FROM departures
		WHERE service_date = ?
		ORDER BY created_at DESC
	`, serviceDate)
	if err != nil {
		return nil, fmt.Errorf("list departures: %w", err)
	}
	defer rows.Close()

	list := []models.Departure{}
	for rows.Next() {
		var d models.Departure
		var category string
		if err := rows.Scan(&d.ID, &d.VesselID, &d.VesselName, &category, &d.DischargePosition,
			&d.PassengerCount, &d.TotalPrice, &d.PricePerPerson, &d.Operator, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan departure: %w", err)
		}
		d.Category = models.Category(category)
		list = append(list, d)
	}
	return list, rows.Err()
}

/*
|--------------------------------------------------------------------------
| HISTORY (historial)
|--------------------------------------------------------------------------
*/

func (s *SQLStore) AddHistory(ctx context.Context, entry models.HistoryEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("encode history details: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO history (id, kind, details, actor, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.ID, string(entry.Kind), string(details), entry.Actor, entry.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListHistory - Most recent entries first.
func (s *SQLStore) ListHistory(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, details, actor, created_at
		FROM history
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	list := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		var kind, details string
		if err := rows.Scan(&e.ID, &kind, &details, &e.Actor, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Kind = models.HistoryKind(kind)
		if err := json.Unmarshal([]byte(details), &e.Details); err != nil {
			e.Details = map[string]any{"raw": details}
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

/*
|--------------------------------------------------------------------------
| USERS
|--------------------------------------------------------------------------
*/

func (s *SQLStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password, role, created_at
		FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (s *SQLStore) CreateUser(ctx context.Context, u models.User) error {
	created := u.CreatedAt
	if created.IsZero() {
		created = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, u.ID, u.Name, u.Email, u.PasswordHash, u.Role, created.UTC())
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
