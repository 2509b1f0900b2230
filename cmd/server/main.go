package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/yadu32/brickworks-pro-suite/internal/config"
	"github.com/yadu32/brickworks-pro-suite/internal/database"
	"github.com/yadu32/brickworks-pro-suite/internal/handler"
	"github.com/yadu32/brickworks-pro-suite/internal/middleware"
	"github.com/yadu32/brickworks-pro-suite/internal/queue"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
	"github.com/yadu32/brickworks-pro-suite/internal/router"
	queue_publisher "github.com/yadu32/brickworks-pro-suite/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	// The service starts even when MySQL is unreachable; /api/health/db
	// reports the degraded state until the database comes back.
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := database.Ping(ctx, db); err != nil {
			log.Printf("database unreachable at startup: %v", err)
		}
		cancel()
	}

	users := repository.NewUserRepo(db)
	factories := repository.NewFactoryRepo(db)
	products := repository.NewProductRepo(db)
	production := repository.NewProductionRepo(db)
	materials := repository.NewMaterialRepo(db)
	purchases := repository.NewPurchaseRepo(db)
	usage := repository.NewUsageRepo(db)
	sales := repository.NewSaleRepo(db)
	customers := repository.NewCustomerRepo(db)
	suppliers := repository.NewSupplierRepo(db)
	employees := repository.NewEmployeeRepo(db)
	payments := repository.NewPaymentRepo(db)
	rates := repository.NewRateRepo(db)
	expenses := repository.NewExpenseRepo(db)

	// Best-effort last-activity stamp, run off the request goroutine.
	touch := func(userID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := users.TouchLastActive(ctx, userID); err != nil {
			log.Printf("touch last_active_at for %s: %v", userID, err)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))

	// Identity resolution ahead of the rate limiter so buckets can key on
	// the user rather than the IP alone. Redis being down disables limiting.
	e.Use(middleware.OptionalJWTAuth(cfg.JWTSecret))
	if rdb := config.NewRedisClient(); rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	} else {
		log.Printf("redis unavailable; rate limiting disabled")
	}

	router.RegisterHealth(e, handler.NewHealthHandler(db))
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret, touch)
	router.RegisterEntities(e, router.EntityHandlers{
		Factories:  handler.NewFactoryHandler(factories),
		Products:   handler.NewProductHandler(factories, products),
		Production: handler.NewProductionHandler(factories, production),
		Materials:  handler.NewMaterialHandler(factories, materials, purchases, usage),
		Purchases:  handler.NewPurchaseHandler(factories, purchases, materials, queue_publisher.PublishStockMovement),
		Usage:      handler.NewUsageHandler(factories, usage, materials, queue_publisher.PublishStockMovement),
		Sales:      handler.NewSaleHandler(factories, sales),
		Customers:  handler.NewCustomerHandler(factories, customers),
		Suppliers:  handler.NewSupplierHandler(factories, suppliers),
		Employees:  handler.NewEmployeeHandler(factories, employees),
		Payments:   handler.NewPaymentHandler(factories, payments),
		Rates:      handler.NewRateHandler(factories, rates),
		Expenses:   handler.NewExpenseHandler(factories, expenses),
		Subs:       handler.NewSubscriptionHandler(factories),
	}, cfg.JWTSecret, touch)
	router.RegisterAdmin(e, handler.NewAdminHandler(cfg, users), cfg.JWTSecret)

	// Audit trail consumer; reconnects on its own and never stops the server.
	go func() {
		if err := queue.StartStockConsumer(); err != nil {
			log.Printf("stock consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
