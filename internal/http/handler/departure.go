package handler

import (
	"github.com/gofiber/fiber/v2"

	"backend-turnero/internal/departure"
	"backend-turnero/internal/models"
)

type DepartureHandler struct {
	svc *departure.Service
}

func NewDepartureHandler(svc *departure.Service) *DepartureHandler {
	return &DepartureHandler{svc: svc}
}

var outcomeStatus = map[departure.Outcome]int{
	departure.FullSuccess:       fiber.StatusCreated,
	departure.Partial:           fiber.StatusMultiStatus,
	departure.TransactionFailed: fiber.StatusServiceUnavailable,
}

var outcomeMessages = map[departure.Outcome]string{
	departure.FullSuccess:       "Zarpe registrado",
	departure.Partial:           "Zarpe registrado, pero la cola no se reorganizó. Revise el orden manualmente",
	departure.TransactionFailed: "No se pudo registrar el zarpe. Los datos se conservan para exportar",
}

// Create - The departure is returned on every outcome so the operator can
// still print or share it.
func (h *DepartureHandler) Create(c *fiber.Ctx) error {
	var req models.CreateDepartureRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Cuerpo de la solicitud inválido")
	}

	ctx := actorContext(c)
	email, _ := c.Locals("email").(string)

	res, err := h.svc.Process(ctx, departure.Request{
		VesselID:       req.VesselID,
		PassengerCount: req.PassengerCount,
		TotalPrice:     req.TotalPrice,
		Operator:       email,
	})
	if err != nil {
		return respondError(c, err)
	}

	body := fiber.Map{
		"success": res.Outcome == departure.FullSuccess,
		"outcome": res.Outcome,
		"message": outcomeMessages[res.Outcome],
		"data":    res.Departure,
	}
	if res.Promoted != nil {
		body["siguiente"] = res.Promoted
	}
	if res.Err != nil {
		body["error"] = res.Err.Error()
	}
	if res.Outcome == departure.TransactionFailed {
		body["retryable"] = true
	}

	return c.Status(outcomeStatus[res.Outcome]).JSON(body)
}

func (h *DepartureHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.List(c.UserContext(), c.Query("fecha"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    list,
	})
}
