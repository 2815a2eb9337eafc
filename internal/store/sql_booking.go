package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
)

const reservationColumns = `id, document, name, company, passengers, departure_at, service_date, used, used_at`

func scanReservation(row rowScanner) (*models.Reservation, error) {
	var r models.Reservation
	var usedAt sql.NullTime
	err := row.Scan(&r.ID, &r.Document, &r.Name, &r.Company, &r.Passengers,
		&r.DepartureAt, &r.ServiceDate, &r.Used, &usedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan reservation: %w", err)
	}
	if usedAt.Valid {
		t := usedAt.Time
		r.UsedAt = &t
	}
	return &r, nil
}

// FindReservation - Earliest reservation for the document on the given day.
func (s *SQLStore) FindReservation(ctx context.Context, document, serviceDate string) (*models.Reservation, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE document = ? AND service_date = ?
		ORDER BY departure_at ASC
		LIMIT 1
	`, document, serviceDate)
	return scanReservation(row)
}

func (s *SQLStore) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	return scanReservation(row)
}

// MarkReservationUsed - Conditional flip. Reports false when the row was
// already used (or does not exist); the caller tells the two apart.
func (s *SQLStore) MarkReservationUsed(ctx context.Context, id string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE reservations SET used = ?, used_at = ?
		WHERE id = ? AND used = ?
	`, true, at.UTC(), id, false)
	if err != nil {
		return false, fmt.Errorf("mark reservation used: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("mark reservation used: %w", err)
	}
	return n > 0, nil
}

const saleColumns = `id, document, name, sale_date, adults, children, price, category, updated_at`

func scanSale(row rowScanner) (*models.Sale, error) {
	var sale models.Sale
	var category string
	err := row.Scan(&sale.ID, &sale.Document, &sale.Name, &sale.SaleDate, &sale.Adults,
		&sale.Children, &sale.Price, &category, &sale.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan sale: %w", err)
	}

	// Counter software writes the display name; keep unknown values as-is.
	if c, ok := models.ParseCategory(category); ok {
		sale.Category = c
	} else {
		sale.Category = models.Category(category)
	}
	return &sale, nil
}

func (s *SQLStore) FindSale(ctx context.Context, document, saleDate string) (*models.Sale, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+saleColumns+`
		FROM sales
		WHERE document = ? AND sale_date = ?
		ORDER BY updated_at DESC
		LIMIT 1
	`, document, saleDate)
	return scanSale(row)
}

func (s *SQLStore) GetSale(ctx context.Context, id string) (*models.Sale, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = ?`, id)
	return scanSale(row)
}

// UpdateSaleCategory - Atomic category+price write, guarded on sale_date so
// a sale from another day can never be modified.
func (s *SQLStore) UpdateSaleCategory(ctx context.Context, id, saleDate string, category models.Category, price int64, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sales SET category = ?, price = ?, updated_at = ?
		WHERE id = ? AND sale_date = ?
	`, category.Name(), price, at.UTC(), id, saleDate)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("sale %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}
