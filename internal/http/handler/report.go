package handler

import (
	"github.com/gofiber/fiber/v2"

	"backend-turnero/internal/report"
)

type ReportHandler struct {
	svc *report.Service
}

func NewReportHandler(svc *report.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Departures - Departure statistics for ?desde=YYYY-MM-DD&hasta=YYYY-MM-DD.
func (h *ReportHandler) Departures(c *fiber.Ctx) error {
	rep, err := h.svc.Departures(c.UserContext(), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    rep,
	})
}
