package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/storefront-bff/internal/application/rating"
	"github.com/jhoicas/storefront-bff/internal/application/storefront"
	"github.com/jhoicas/storefront-bff/internal/application/trending"
	"github.com/jhoicas/storefront-bff/internal/infrastructure/catalogmeta"
	"github.com/jhoicas/storefront-bff/internal/infrastructure/metrics"
	"github.com/jhoicas/storefront-bff/internal/infrastructure/upstream"
	httpRouter "github.com/jhoicas/storefront-bff/internal/interfaces/http"
	"github.com/jhoicas/storefront-bff/pkg/config"
	"github.com/jhoicas/storefront-bff/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	m := metrics.New(true)

	// ── Tablas estáticas de categorías ────────────────────────────────────────
	directory, err := catalogmeta.Load(cfg.Storefront.CategoryTablesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("tablas de categorías")
	}

	// ── Gateways upstream ─────────────────────────────────────────────────────
	newClient := func(service string, uc config.UpstreamConfig) *upstream.Client {
		return upstream.NewClient(upstream.ClientConfig{
			Service:       service,
			BaseURL:       uc.BaseURL,
			Timeout:       uc.Timeout,
			RPS:           uc.RPS,
			Burst:         uc.Burst,
			JWTSecret:     cfg.Upstreams.JWTSecret,
			JWTIssuer:     cfg.Upstreams.JWTIssuer,
			JWTExpMinutes: cfg.Upstreams.JWTExpMinutes,
		}, log, m)
	}
	catalogGW := upstream.NewCatalogGateway(newClient("catalog", cfg.Upstreams.Catalog))
	inventoryGW := upstream.NewInventoryGateway(newClient("inventory", cfg.Upstreams.Inventory))
	reviewGW := upstream.NewReviewGateway(newClient("reviews", cfg.Upstreams.Reviews))

	// ── Casos de uso ──────────────────────────────────────────────────────────
	enricher := rating.NewEnricher(reviewGW, log.Component("rating"), m)

	var source trending.CandidateSource
	switch cfg.Storefront.TrendingSource {
	case config.TrendingSourceCatalog:
		source = trending.NewCatalogFeedSource(catalogGW)
	default:
		engine := trending.NewEngine(trending.DefaultConfig(), time.Now)
		source = trending.NewScoredPoolSource(catalogGW, enricher, engine)
	}

	aggregator := storefront.NewAggregator(storefront.Deps{
		Catalog:   catalogGW,
		Inventory: inventoryGW,
		Reviews:   reviewGW,
		Ratings:   enricher,
		Source:    source,
		Directory: directory,
		Log:       log.Component("storefront"),
		Recorder:  m,
	}, storefront.Options{
		VerifyCategoryCounts: cfg.Storefront.VerifyCategoryCounts,
	})
	log.Info().
		Str("trending_source", aggregator.SourceName()).
		Bool("verify_category_counts", cfg.Storefront.VerifyCategoryCounts).
		Msg("agregador listo")

	// ── Servidor HTTP ─────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	if cfg.Swagger.Enabled {
		// Swagger UI: http://localhost:<port>/docs
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.FilePath,
			Path:     "docs",
			Title:    "Storefront BFF API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Storefront: aggregator,
		Limits: httpRouter.Limits{
			DefaultProductLimit:  cfg.Storefront.DefaultProductLimit,
			DefaultCategoryLimit: cfg.Storefront.DefaultCategoryLimit,
			MaxLimit:             cfg.Storefront.MaxLimit,
			DefaultReviewPage:    cfg.Storefront.DefaultReviewPage,
			DefaultReviewLimit:   cfg.Storefront.DefaultReviewLimit,
		},
		ServiceName:    cfg.App.Name,
		Log:            log,
		Observer:       m,
		MetricsHandler: m.Handler(),
		Readiness: map[string]httpRouter.ReadinessFunc{
			"category_tables": func() error {
				if _, routes := directory.Len(); routes == 0 {
					return fmt.Errorf("sin rutas de categoría cargadas")
				}
				return nil
			},
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
