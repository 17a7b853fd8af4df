package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/gowheels/go-wheels/internal/config"
	"github.com/gowheels/go-wheels/internal/database"
	"github.com/gowheels/go-wheels/internal/handler"
	"github.com/gowheels/go-wheels/internal/middleware"
	"github.com/gowheels/go-wheels/internal/queue"
	"github.com/gowheels/go-wheels/internal/repository"
	"github.com/gowheels/go-wheels/internal/router"
	"github.com/gowheels/go-wheels/internal/service"
	"github.com/gowheels/go-wheels/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	uploads, err := storage.NewUploads(cfg.UploadDir)
	if err != nil {
		log.Fatalf("uploads: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	cars := repository.NewCarRepo(db)
	bookings := repository.NewBookingRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	carH := handler.NewCarHandler(cars)
	bookingH := handler.NewBookingHandler(bookings, cars, uploads)
	paymentH := handler.NewPaymentHandler(bookings, cars)

	e := echo.New()
	e.HideBanner = true

	// Redis backs both the token-bucket rate limiter and the public
	// response cache. Both degrade to pass-through when disabled.
	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()
	if rlCfg.Enabled {
		e.Use(middleware.NewTokenBucket(rlCfg, rdb))
	}
	var cache echo.MiddlewareFunc
	cacheCfg := config.LoadCacheConfig()
	if cacheCfg.Enabled {
		cache = middleware.NewRedisCache(cacheCfg, rdb)
	}

	router.RegisterRoutes(e, carH, cfg.UploadDir, cache)
	router.RegisterAuth(e, authH, users)
	router.RegisterBookings(e, bookingH, cfg.AccessSecret, users)
	router.RegisterPayments(e, paymentH)

	// The consumer tails booking.created and keeps its own reconnect
	// loop; it never takes the server down with it.
	go func() {
		if err := queue.StartBookingConsumer(service.BrokerURL()); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
