package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"backend-turnero/internal/booking"
	"backend-turnero/internal/config"
	"backend-turnero/internal/departure"
	"backend-turnero/internal/http/middleware"
	"backend-turnero/internal/models"
	"backend-turnero/internal/queue"
	"backend-turnero/internal/realtime"
	"backend-turnero/internal/report"
	"backend-turnero/internal/store"
)

type Deps struct {
	Board      *queue.Board
	Hub        *realtime.Hub
	Departures *departure.Service
	Bookings   *booking.Service
	Reports    *report.Service
	History    store.HistoryStore
	Users      store.UserStore
	Tokens     *config.TokenIssuer
	BasicAuth  config.BasicAuthConfig
}

func Register(app *fiber.App, d Deps) {
	auth := NewAuthHandler(d.Users, d.Tokens)
	board := NewBoardHandler(d.Board, d.History)
	zarpes := NewDepartureHandler(d.Departures)
	bookings := NewBookingHandler(d.Bookings)
	reports := NewReportHandler(d.Reports)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Turnero API funcionando",
		})
	})

	app.Post("/api/login", auth.Login)
	app.Get("/api/board", board.GetBoard)

	// Displays
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/board", websocket.New(d.Hub.Serve))

	if d.BasicAuth.User != "" {
		app.Get("/internal/diagnostics", middleware.BasicAuth(d.BasicAuth), Diagnostics(d.Board, d.Hub))
	}

	// Base API (login required)
	api := app.Group("/api", middleware.JWTAuth(d.Tokens))

	api.Post("/logout", auth.Logout)
	api.Get("/history", board.History)
	api.Get("/zarpes", zarpes.List)
	api.Get("/precios", bookings.Prices)

	// ===== ADMIN ROUTES =====
	admin := middleware.RoleAuth(models.RoleAdmin)

	// Board
	api.Post("/board/swap", admin, board.Swap)
	api.Post("/board/reposition", admin, board.Reposition)
	api.Post("/board/advance", admin, board.Advance)
	api.Post("/board/reset", admin, board.Reset)
	api.Put("/board/vessels/:id/status", admin, board.SetStatus)

	// Zarpes
	api.Post("/zarpes", admin, zarpes.Create)

	// Reportes
	api.Get("/reportes/zarpes", admin, reports.Departures)

	// Reservas / ventas
	api.Get("/reservas/:documento", admin, bookings.FindReservation)
	api.Post("/reservas/:id/usar", admin, bookings.UseReservation)
	api.Get("/ventas/:documento", admin, bookings.FindSale)
	api.Get("/ventas/:id/preview", admin, bookings.PreviewCategory)
	api.Put("/ventas/:id/categoria", admin, bookings.UpdateCategory)
}
