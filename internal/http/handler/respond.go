package handler

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/queue"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return v
}

// actorContext - Request context tagged with the operator email for
// history entries.
func actorContext(c *fiber.Ctx) context.Context {
	email, _ := c.Locals("email").(string)
	return queue.WithActor(c.UserContext(), email)
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// bindJSON parses and validates the body. On failure it has already
// written the 400 response and returns false.
func bindJSON(c *fiber.Ctx, v *validator.Validate, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badRequest(c, "Cuerpo de la solicitud inválido")
	}
	if err := v.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return false, respondError(c, apperror.NewValidation(verrs[0].Field(), verrs[0].Tag(), "valor inválido"))
		}
		return false, badRequest(c, err.Error())
	}
	return true, nil
}

// respondError - Error taxonomy to HTTP status.
func respondError(c *fiber.Ctx, err error) error {
	var verr *apperror.ValidationError
	var swe *apperror.StoreWriteError

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   verr.Message,
			"field":   verr.Field,
			"rule":    verr.Rule,
		})
	case errors.Is(err, apperror.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "No encontrado",
			"detail":  err.Error(),
		})
	case errors.Is(err, apperror.ErrAlreadyUsed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   "La reserva ya fue usada",
			"detail":  err.Error(),
		})
	case errors.As(err, &swe):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success":   false,
			"error":     "No se pudo guardar, intente de nuevo",
			"detail":    err.Error(),
			"retryable": true,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Error interno",
		"detail":  err.Error(),
	})
}

// respondResult - queue.Result to HTTP.
func respondResult(c *fiber.Ctx, res queue.Result) error {
	body := fiber.Map{
		"success": res.OK(),
		"kind":    res.Kind,
		"key":     res.Message,
		"message": resultMessage(res),
		"updated": res.Updated,
	}
	if res.Vessel != nil {
		body["data"] = res.Vessel
	}

	switch res.Kind {
	case queue.Applied, queue.Noop:
		return c.JSON(body)
	case queue.StoreFailed:
		body["retryable"] = true
		body["error"] = res.Err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(body)
	}

	if res.Err != nil {
		body["error"] = res.Err.Error()
	}
	if errors.Is(res.Err, apperror.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(body)
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
