package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"backend-turnero/internal/booking"
	"backend-turnero/internal/models"
)

type BookingHandler struct {
	svc      *booking.Service
	validate *validator.Validate
}

func NewBookingHandler(svc *booking.Service) *BookingHandler {
	return &BookingHandler{svc: svc, validate: newValidator()}
}

func (h *BookingHandler) FindReservation(c *fiber.Ctx) error {
	r, err := h.svc.FindReservation(c.UserContext(), c.Params("documento"))
	if err != nil {
		return respondError(c, err)
	}

	msg := "Reserva encontrada"
	if r.Used {
		msg = "Esta reserva ya fue usada"
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": msg,
		"data":    r,
	})
}

func (h *BookingHandler) UseReservation(c *fiber.Ctx) error {
	r, err := h.svc.MarkUsed(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Reserva marcada como usada",
		"data":    r,
	})
}

func (h *BookingHandler) FindSale(c *fiber.Ctx) error {
	sale, err := h.svc.FindSale(c.UserContext(), c.Params("documento"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    sale,
	})
}

func (h *BookingHandler) PreviewCategory(c *fiber.Ctx) error {
	change, err := h.svc.PreviewCategoryChange(c.UserContext(), c.Params("id"), c.Query("categoria"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    change,
	})
}

func (h *BookingHandler) UpdateCategory(c *fiber.Ctx) error {
	var req models.UpdateSaleCategoryRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	change, err := h.svc.UpdateSaleCategory(c.UserContext(), c.Params("id"), req.Category)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Categoría actualizada",
		"data":    change,
	})
}

// Prices - Tariff sheet for ?pasajeros=N (default 1).
func (h *BookingHandler) Prices(c *fiber.Ctx) error {
	pax := c.QueryInt("pasajeros", 1)
	table, err := booking.PriceTable(pax)
	if err != nil {
		return respondError(c, err)
	}

	rows := make([]fiber.Map, 0, len(models.Categories))
	for _, cat := range models.Categories {
		rows = append(rows, fiber.Map{
			"categoria": cat,
			"nombre":    cat.Name(),
			"precio":    table[cat],
		})
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"pasajeros": pax,
		"data":      rows,
	})
}
