package models

import "strings"

type Category string

const (
	CategoryLanchaTaxi Category = "lancha-taxi"
	CategoryDeportiva  Category = "deportiva"
	CategoryPlanchon   Category = "planchon"
	CategoryBarco      Category = "barco"
	CategoryYate       Category = "yate"
	CategoryCarguero   Category = "carguero"
)

// Categories - Display order used by the admin selectors.
var Categories = []Category{
	CategoryLanchaTaxi,
	CategoryDeportiva,
	CategoryPlanchon,
	CategoryBarco,
	CategoryYate,
	CategoryCarguero,
}

var categoryNames = map[Category]string{
	CategoryLanchaTaxi: "Lancha Taxi",
	CategoryDeportiva:  "Deportiva",
	CategoryPlanchon:   "Planchón",
	CategoryBarco:      "Barco",
	CategoryYate:       "Yate",
	CategoryCarguero:   "Carguero",
}

func (c Category) Name() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// ParseCategory accepts either the key ("planchon") or the display name
// ("Planchón"), case-insensitive. Sale rows store the display name.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) || strings.EqualFold(s, categoryNames[c]) {
			return c, true
		}
	}
	return "", false
}
