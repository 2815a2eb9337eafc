// Package booking covers the counter-side lookups: same-day reservations
// that can be used once, and same-day sales whose category can be changed
// with a recomputed price.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/helper"
	"backend-turnero/internal/models"
	"backend-turnero/internal/store"
)

type PriceChange struct {
	Sale       models.Sale     `json:"venta"`
	From       models.Category `json:"categoria_anterior"`
	To         models.Category `json:"categoria_nueva"`
	Old        int64           `json:"precio_anterior"`
	New        int64           `json:"precio_nuevo"`
	Difference int64           `json:"diferencia"`
}

type Service struct {
	store store.BookingStore
	clock *helper.DockClock
}

func NewService(s store.BookingStore, clock *helper.DockClock) *Service {
	return &Service{store: s, clock: clock}
}

func normalizeDocument(doc string) (string, error) {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return "", apperror.NewValidation("documento", "required", "el documento es obligatorio")
	}
	return doc, nil
}

/*
|--------------------------------------------------------------------------
| RESERVATIONS
|--------------------------------------------------------------------------
*/

// FindReservation - Today's reservation for the document. A used one is
// still returned so the counter can show it; MarkUsed refuses it.
func (s *Service) FindReservation(ctx context.Context, document string) (*models.Reservation, error) {
	doc, err := normalizeDocument(document)
	if err != nil {
		return nil, err
	}
	return s.store.FindReservation(ctx, doc, s.clock.Today())
}

// MarkUsed - One-way flip. ErrAlreadyUsed and ErrNotFound are distinct.
func (s *Service) MarkUsed(ctx context.Context, id string) (*models.Reservation, error) {
	flipped, err := s.store.MarkReservationUsed(ctx, id, s.clock.Now())
	if err != nil {
		return nil, apperror.WriteFailed("reserva", err)
	}

	r, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return r, fmt.Errorf("reserva de %s: %w", r.Name, apperror.ErrAlreadyUsed)
	}

	log.Printf("[booking] reservation %s used (%s, %d pax)", r.ID, r.Company, r.Passengers)
	return r, nil
}

/*
|--------------------------------------------------------------------------
| SALES
|--------------------------------------------------------------------------
*/

// FindSale - Only today's sales are visible; older ones are not found.
func (s *Service) FindSale(ctx context.Context, document string) (*models.Sale, error) {
	doc, err := normalizeDocument(document)
	if err != nil {
		return nil, err
	}
	return s.store.FindSale(ctx, doc, s.clock.Today())
}

// sameDaySale loads a sale and hides it unless it belongs to today.
func (s *Service) sameDaySale(ctx context.Context, id string) (*models.Sale, error) {
	sale, err := s.store.GetSale(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale.SaleDate != s.clock.Today() {
		return nil, fmt.Errorf("venta %s del %s: %w", id, sale.SaleDate, apperror.ErrNotFound)
	}
	return sale, nil
}

func (s *Service) PreviewCategoryChange(ctx context.Context, id, category string) (*PriceChange, error) {
	sale, err := s.sameDaySale(ctx, id)
	if err != nil {
		return nil, err
	}
	return priceChange(*sale, category)
}

func priceChange(sale models.Sale, category string) (*PriceChange, error) {
	to, ok := models.ParseCategory(category)
	if !ok {
		return nil, apperror.NewValidation("categoria", "oneof", fmt.Sprintf("categoría desconocida: %q", category))
	}
	if to == sale.Category {
		return nil, apperror.NewValidation("categoria", "changed", "la venta ya tiene esa categoría")
	}

	price, err := CalculatePrice(to, sale.Adults)
	if err != nil {
		return nil, err
	}

	return &PriceChange{
		Sale:       sale,
		From:       sale.Category,
		To:         to,
		Old:        sale.Price,
		New:        price,
		Difference: price - sale.Price,
	}, nil
}

// UpdateSaleCategory - Recompute and store the price for the new category.
// The write itself is guarded on the sale date.
func (s *Service) UpdateSaleCategory(ctx context.Context, id, category string) (*PriceChange, error) {
	sale, err := s.sameDaySale(ctx, id)
	if err != nil {
		return nil, err
	}
	change, err := priceChange(*sale, category)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.store.UpdateSaleCategory(ctx, id, sale.SaleDate, change.To, change.New, now); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
		return nil, apperror.WriteFailed("venta", err)
	}

	change.Sale.Category = change.To
	change.Sale.Price = change.New
	change.Sale.UpdatedAt = now

	log.Printf("[booking] sale %s: %s -> %s (%+d)", id, change.From.Name(), change.To.Name(), change.Difference)
	return change, nil
}
