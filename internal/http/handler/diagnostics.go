package handler

import (
	"github.com/gofiber/fiber/v2"

	"backend-turnero/internal/queue"
	"backend-turnero/internal/realtime"
)

func Diagnostics(board *queue.Board, hub *realtime.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success":  true,
			"board":    board.Diagnostics(),
			"displays": hub.Clients(),
		})
	}
}
