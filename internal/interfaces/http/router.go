package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/storefront-bff/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Storefront     StorefrontService
	Limits         Limits
	ServiceName    string
	Log            *logger.Logger
	Observer       HTTPObserver             // nil: sin métricas HTTP
	MetricsHandler http.Handler             // nil: sin /metrics
	Readiness      map[string]ReadinessFunc // comprobaciones de /ready
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Use(RequestID())
	app.Use(CorrelationID())
	app.Use(RequestLogger(log.Component("http"), deps.Observer))
	// Dentro del logger: un panic llega como error 500 y la petición queda registrada.
	app.Use(recover.New())

	// Ops
	health := NewHealthHandler(deps.ServiceName, deps.Readiness)
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	// Storefront (público, solo lectura)
	sf := app.Group("/api/storefront")
	h := NewStorefrontHandler(deps.Storefront, deps.Limits, log.Component("storefront"))
	sf.Get("/trending-products", h.TrendingProducts)
	sf.Get("/trending-categories", h.TrendingCategories)
	sf.Get("/categories", h.Categories)
	sf.Get("/products/:id", h.ProductDetail)
}
