package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticket-booking/internal/config"
	"github.com/iliyamo/event-ticket-booking/internal/database"
	"github.com/iliyamo/event-ticket-booking/internal/handler"
	"github.com/iliyamo/event-ticket-booking/internal/queue"
	"github.com/iliyamo/event-ticket-booking/internal/repository"
	"github.com/iliyamo/event-ticket-booking/internal/router"
)

func main() {
	// .env is optional; real deployments set variables in the environment.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	userRepo := repository.NewUserRepo(db)
	organizerRepo := repository.NewOrganizerRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	eventRepo := repository.NewEventRepo(db)
	ticketClassRepo := repository.NewTicketClassRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	paymentRepo := repository.NewPaymentMethodRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	authHandler := handler.NewAuthHandler(cfg, userRepo, organizerRepo, tokenRepo)
	customerHandler := handler.NewCustomerHandler(eventRepo, organizerRepo, ticketClassRepo, categoryRepo, orderRepo, userRepo)
	orderHandler := handler.NewOrderHandler(orderRepo, eventRepo, ticketClassRepo, paymentRepo, seatRepo)
	organizerHandler := handler.NewOrganizerHandler(eventRepo, organizerRepo, categoryRepo)
	adminHandler := handler.NewAdminHandler(eventRepo, seatRepo)

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, userRepo, rlCfg, rdb)
	router.RegisterCustomer(e, customerHandler, orderHandler, cfg.JWTSecret, userRepo, cacheCfg, rdb)
	router.RegisterOrganizer(e, organizerHandler, cfg.JWTSecret, userRepo)
	router.RegisterAdmin(e, adminHandler, cfg.JWTSecret, userRepo)

	// The order-log consumer reconnects forever in the background; broker
	// downtime never blocks the HTTP server.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
