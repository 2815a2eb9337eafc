package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"backend-turnero/internal/models"
	"backend-turnero/internal/queue"
	"backend-turnero/internal/realtime"
	"backend-turnero/internal/store"
)

type BoardHandler struct {
	board    *queue.Board
	history  store.HistoryStore
	validate *validator.Validate
}

func NewBoardHandler(board *queue.Board, history store.HistoryStore) *BoardHandler {
	return &BoardHandler{board: board, history: history, validate: newValidator()}
}

// GetBoard - Current ordered board, same shape as the websocket push.
func (h *BoardHandler) GetBoard(c *fiber.Ctx) error {
	msg := realtime.BuildMessage(h.board.Snapshot(), time.Now())
	return c.JSON(fiber.Map{
		"success":  true,
		"data":     msg.Data,
		"boarding": msg.Boarding,
		"next":     msg.Next,
	})
}

func (h *BoardHandler) Swap(c *fiber.Ctx) error {
	var req models.SwapRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}
	res := h.board.SwapAdjacent(actorContext(c), req.Index, queue.Direction(req.Direction))
	return respondResult(c, res)
}

func (h *BoardHandler) Reposition(c *fiber.Ctx) error {
	var req models.RepositionRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}
	return respondResult(c, h.board.Reposition(actorContext(c), req.DraggedID, req.TargetID))
}

func (h *BoardHandler) Advance(c *fiber.Ctx) error {
	return respondResult(c, h.board.AdvanceTurn(actorContext(c)))
}

// Reset - Body must carry {"confirm": true}.
func (h *BoardHandler) Reset(c *fiber.Ctx) error {
	var req models.ResetRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Cuerpo de la solicitud inválido")
		}
	}
	return respondResult(c, h.board.ResetAll(actorContext(c), req.Confirm))
}

func (h *BoardHandler) SetStatus(c *fiber.Ctx) error {
	var req models.UpdateStatusRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}
	return respondResult(c, h.board.SetStatus(actorContext(c), c.Params("id"), req.Status))
}

func (h *BoardHandler) History(c *fiber.Ctx) error {
	entries, err := h.history.ListHistory(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    entries,
	})
}
