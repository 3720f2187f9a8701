// Package router defines HTTP routing, adapters, and related logic for the orders service.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/STaninnat/orders/handlers"
	carthandlers "github.com/STaninnat/orders/handlers/cart"
	orderhandlers "github.com/STaninnat/orders/handlers/order"
	"github.com/STaninnat/orders/middlewares"
)

// router.go: Main API router setup, middleware configuration, and route registration.

// Config bundles what SetupRouter needs to wire the cart and order
// handler subrouters.
type Config struct {
	Cart  *carthandlers.Config
	Order *orderhandlers.Config
}

// SetupRouter initializes and returns the main chi.Mux router for the API.
// Sets up global middleware and mounts the v1 subrouter carrying the cart
// and order surfaces.
func (apicfg *Config) SetupRouter(logger *logrus.Logger, rateLimiter func(http.Handler) http.Handler) *chi.Mux {
	router := chi.NewRouter()

	apicfg.setupGlobalMiddleware(router, logger, rateLimiter)

	v1Router := apicfg.createV1Router()
	router.Mount("/v1", v1Router)
	return router
}

func (apicfg *Config) setupGlobalMiddleware(router *chi.Mux, logger *logrus.Logger, rateLimiter func(http.Handler) http.Handler) {
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Use(middlewares.SecurityHeaders)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.LoggingMiddleware(
		logger,
		map[string]struct{}{"/v1": {}},
		map[string]struct{}{"/v1/healthz": {}, "/v1/errorz": {}},
	))

	if rateLimiter != nil {
		router.Use(rateLimiter)
	}

	router.Use(CallerMiddleware)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

func (apicfg *Config) createV1Router() *chi.Mux {
	v1Router := chi.NewRouter()

	v1Router.Get("/readiness", Adapt(handlers.HandlerReadiness))
	v1Router.Get("/healthz", Adapt(handlers.HandlerHealth))
	v1Router.Get("/errorz", Adapt(handlers.HandlerError))

	apicfg.setupCartRoutes(v1Router)
	apicfg.setupOrderRoutes(v1Router)

	return v1Router
}

func (apicfg *Config) setupCartRoutes(v1Router *chi.Mux) {
	cartRouter := chi.NewRouter()
	cartRouter.Get("/", WithCaller(apicfg.Cart.HandlerGetCart))
	cartRouter.Get("/products", WithCaller(apicfg.Cart.HandlerListProducts))
	cartRouter.Post("/products/{product_id}/increment", WithCaller(apicfg.Cart.HandlerIncrement))
	cartRouter.Put("/products/{product_id}/quantity", WithCaller(apicfg.Cart.HandlerSetQuantity))
	cartRouter.Put("/products/{product_id}/selection", WithCaller(apicfg.Cart.HandlerSetSelection))
	cartRouter.Put("/products/{product_id}/comment", WithCaller(apicfg.Cart.HandlerSetComment))
	cartRouter.Delete("/products/{product_id}", WithCaller(apicfg.Cart.HandlerDeleteItem))
	cartRouter.Post("/clear", WithCaller(apicfg.Cart.HandlerClear))
	cartRouter.Post("/merge", WithCaller(apicfg.Cart.HandlerMerge))
	v1Router.Mount("/cart", cartRouter)
}

func (apicfg *Config) setupOrderRoutes(v1Router *chi.Mux) {
	ordersRouter := chi.NewRouter()
	ordersRouter.Get("/", WithCaller(apicfg.Order.HandlerListMine))
	ordersRouter.Post("/search", WithCaller(apicfg.Order.HandlerSearch))
	ordersRouter.Post("/create_from_cart", WithCaller(apicfg.Order.HandlerConvertCart))
	ordersRouter.Post("/create_from_cart/revert", WithCaller(apicfg.Order.HandlerRevertConversion))
	ordersRouter.Get("/by-store/{store_id}", WithCaller(apicfg.Order.HandlerByStore))
	ordersRouter.Get("/by-id/{uuid}", WithCaller(apicfg.Order.HandlerGetByID))
	ordersRouter.Put("/by-id/{uuid}/status", WithCaller(apicfg.Order.HandlerSetStatus))
	ordersRouter.Get("/by-slug/{int}", WithCaller(apicfg.Order.HandlerGetBySlug))
	v1Router.Mount("/orders", ordersRouter)

	orderDiffRouter := chi.NewRouter()
	orderDiffRouter.Get("/by-id/{uuid}", WithCaller(apicfg.Order.HandlerDiffs))
	v1Router.Mount("/order_diff", orderDiffRouter)
}
