// Package main is the entry point for the orders service.
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	carthandlers "github.com/STaninnat/orders/handlers/cart"
	orderhandlers "github.com/STaninnat/orders/handlers/order"
	"github.com/STaninnat/orders/internal/cart"
	"github.com/STaninnat/orders/internal/config"
	"github.com/STaninnat/orders/internal/database"
	"github.com/STaninnat/orders/internal/loaders"
	"github.com/STaninnat/orders/internal/order"
	"github.com/STaninnat/orders/internal/router"
	"github.com/STaninnat/orders/middlewares"
	"github.com/STaninnat/orders/utils"

	_ "github.com/lib/pq"
)

func main() {
	if err := godotenv.Load(".env.development"); err != nil {
		log.Printf("Warning: assuming default configuration, env unreadable: %v", err)
	}

	logger := utils.InitLogger()
	cfg := config.LoadConfig("config")

	if err := database.RunMigrations(cfg.DBConn); err != nil {
		log.Fatalf("Failed to run migrations: %v\n", err)
	}

	db := database.New(cfg.DBConn)

	cartRepo := cart.NewRepository(db)
	cartService := cart.NewService(cartRepo, db, cfg.DBConn)

	orderRepo := order.NewRepository(db)
	orderService := order.NewService(orderRepo, func(txDB *database.Queries) order.CartSourceFactory {
		return cartRepo.WithQueries(txDB)
	}, db, cfg.DBConn)

	r := &router.Config{
		Cart:  &carthandlers.Config{Service: cartService, Logger: logger},
		Order: &orderhandlers.Config{Service: orderService, Logger: logger},
	}

	rateLimiter := middlewares.RedisRateLimiter(cfg.RedisClient, 100, 15*time.Minute)

	srv := &http.Server{
		Addr:         cfg.Listen.Host + ":" + cfg.Listen.Port,
		Handler:      r.SetupRouter(logger, rateLimiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	loaderCtx, stopLoaders := context.WithCancel(context.Background())

	go loaders.RunShippingTracker(loaderCtx, logger, orderService, cfg.SentOrders)
	go loaders.RunDeliveryCompletion(loaderCtx, logger, orderService, cfg.DeliveredOrders)
	go loaders.RunPaidDeliveredReport(loaderCtx, logger, orderService, cfg.S3Client, cfg.S3, cfg.PaidDeliveredReport)

	go func() {
		log.Printf("Serving on %s\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v\n", err)
		}
	}()

	utils.GracefulShutdown(srv, cfg, 10*time.Second)
	stopLoaders()
}
