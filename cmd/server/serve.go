package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"

	"backend-turnero/internal/booking"
	"backend-turnero/internal/broker"
	"backend-turnero/internal/config"
	"backend-turnero/internal/departure"
	"backend-turnero/internal/helper"
	"backend-turnero/internal/http/handler"
	"backend-turnero/internal/queue"
	"backend-turnero/internal/realtime"
	"backend-turnero/internal/report"
	"backend-turnero/internal/store"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and websocket API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// openStore - Config, database, schema and the change notifier shared by
// every command.
func openStore(ctx context.Context) (*config.Config, *sql.DB, *store.SQLStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := config.OpenDB(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := store.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, nil, fmt.Errorf("migrate: %w", err)
	}

	var notifier store.Notifier = store.NewLocalNotifier()
	if cfg.Redis.Addr != "" {
		client, err := config.NewRedis(cfg.Redis)
		if err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		notifier = store.NewRedisNotifier(client)
	} else {
		log.Println("[turnero] REDIS_ADDR empty, using in-process notifications")
	}

	return cfg, db, store.NewSQLStore(db, notifier), nil
}

func runServe(parent context.Context) error {
	runtime.GOMAXPROCS(runtime.NumCPU())

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, db, s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	clock, err := helper.NewDockClock(cfg.App.Timezone)
	if err != nil {
		return err
	}

	board := queue.NewBoard(s, s)
	if err := board.Start(ctx); err != nil {
		return fmt.Errorf("start board: %w", err)
	}
	defer board.Stop()

	if n, err := board.EnsureRoster(ctx, queue.DefaultRoster); err != nil {
		log.Printf("[turnero] seed roster: %v", err)
	} else if n > 0 {
		log.Printf("[turnero] seeded %d vessels", n)
	}

	hub := realtime.NewHub()
	updates, unwatch := board.Watch()
	defer unwatch()
	go hub.Run(ctx, updates)

	var publisher departure.Publisher
	if cfg.AMQP.URL != "" {
		p, err := broker.NewPublisher(cfg.AMQP.URL)
		if err != nil {
			log.Printf("[turnero] rabbitmq disabled: %v", err)
		} else {
			defer p.Close()
			publisher = p
		}
	}

	app := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE",
	}))

	handler.Register(app, handler.Deps{
		Board:      board,
		Hub:        hub,
		Departures: departure.NewService(board, s, publisher, clock),
		Bookings:   booking.NewService(s, clock),
		Reports:    report.NewService(s, clock),
		History:    s,
		Users:      s,
		Tokens:     config.NewTokenIssuer(cfg.JWT),
		BasicAuth:  cfg.BasicAuth,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[turnero] listening on %s", cfg.App.Addr())
		errCh <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("[turnero] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}
