package booking

import (
	"fmt"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
)

// CalculatePrice - Static dock tariff in COP. Rules are a flat rate per head,
// a flat price per passenger bracket, or a per-group rate (carguero, groups
// of five).
func CalculatePrice(category models.Category, passengers int) (int64, error) {
	if passengers < 1 {
		return 0, apperror.NewValidation("pasajeros", "min", "debe haber al menos un pasajero")
	}
	p := int64(passengers)

	switch category {
	case models.CategoryLanchaTaxi:
		return 30000 * p, nil

	case models.CategoryDeportiva:
		switch {
		case passengers <= 4:
			return 250000, nil
		case passengers <= 6:
			return 300000, nil
		default:
			return 50000 * p, nil
		}

	case models.CategoryPlanchon:
		switch {
		case passengers <= 10:
			return 350000, nil
		case passengers <= 15:
			return 450000, nil
		case passengers <= 20:
			return 500000, nil
		default:
			return 25000 * p, nil
		}

	case models.CategoryBarco:
		switch {
		case passengers <= 19:
			return 30000 * p, nil
		case passengers <= 30:
			return 25000 * p, nil
		default:
			return 20000 * p, nil
		}

	case models.CategoryYate:
		if passengers <= 10 {
			return 400000, nil
		}
		return 30000 * p, nil

	case models.CategoryCarguero:
		groups := (p + 4) / 5
		return groups * 200000, nil
	}

	return 0, apperror.NewValidation("categoria", "oneof", fmt.Sprintf("categoría desconocida: %q", category))
}

// PriceTable - Reference prices per category for a passenger count, used by
// the admin price sheet.
func PriceTable(passengers int) (map[models.Category]int64, error) {
	out := make(map[models.Category]int64, len(models.Categories))
	for _, c := range models.Categories {
		price, err := CalculatePrice(c, passengers)
		if err != nil {
			return nil, err
		}
		out[c] = price
	}
	return out, nil
}
