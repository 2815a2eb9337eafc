package handler

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/config"
	"backend-turnero/internal/models"
	"backend-turnero/internal/store"
)

type AuthHandler struct {
	users    store.UserStore
	tokens   *config.TokenIssuer
	validate *validator.Validate
}

func NewAuthHandler(users store.UserStore, tokens *config.TokenIssuer) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, validate: newValidator()}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if ok, err := bindJSON(c, h.validate, &req); !ok {
		return err
	}

	user, err := h.users.FindUserByEmail(c.UserContext(), req.Email)
	if errors.Is(err, apperror.ErrNotFound) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Email o contraseña incorrectos",
		})
	}
	if err != nil {
		log.Printf("[auth] login lookup: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Error de base de datos",
		})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Email o contraseña incorrectos",
		})
	}

	token, err := h.tokens.Generate(user.ID, user.Name, user.Email, user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "No se pudo generar el token",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    models.LoginResponse{Token: token, User: models.ToUserResponse(*user)},
		"message": "Bienvenido, " + user.Name,
	})
}

// Logout - Tokens are stateless; the client drops its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Sesión cerrada",
	})
}
