// Package storefront contiene el agregador de vistas del BFF: tendencias de productos,
// tendencias de categorías, listado de categorías y ficha de producto.
//
// Cada operación sigue la misma forma:
//  1. obtener el conjunto primario (obligatorio; su fallo es fatal),
//  2. abrir en paralelo las ramas secundarias con disciplina all-settled (pkg/settle),
//  3. cruzar por clave aplicando los valores por defecto documentados,
//  4. dar forma a la respuesta.
package storefront

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jhoicas/storefront-bff/internal/application/ports"
	"github.com/jhoicas/storefront-bff/internal/application/rating"
	"github.com/jhoicas/storefront-bff/internal/application/trending"
	"github.com/jhoicas/storefront-bff/internal/domain"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
	"github.com/jhoicas/storefront-bff/pkg/logger"
)

// Ramas opcionales (para logs y métricas de degradación).
const (
	BranchInventory     = "inventory"
	BranchRatings       = rating.BranchRatings
	BranchCategoryCount = "category_count"
	BranchReviewList    = "review_list"
	BranchRatingSummary = "rating_summary"
)

// Ámbitos del id de correlación generado cuando el llamador no envía uno.
const (
	ScopeProductsTrending   = "products-trending"
	ScopeCategoriesTrending = "categories-trending"
	ScopeCategoriesList     = "categories-list"
	ScopeProductDetail      = "product-detail"
)

// RatingLookup resuelve calificaciones por id de producto (ver rating.Enricher).
type RatingLookup interface {
	LookupRatings(ctx context.Context, ids []string, correlationID string) (map[string]entity.RatingDetails, error)
}

// Deps dependencias del agregador.
type Deps struct {
	Catalog   ports.CatalogGateway
	Inventory ports.InventoryGateway
	Reviews   ports.ReviewGateway
	Ratings   RatingLookup
	Source    trending.CandidateSource
	Directory ports.CategoryDirectory
	Log       *logger.Logger
	Recorder  ports.DegradationRecorder
}

// Options comportamiento configurable del agregador.
type Options struct {
	// VerifyCategoryCounts re-verifica el productCount de cada categoría mapeada contra el
	// conteo autoritativo por departamento. Desactivado, accurateCount = productCount reportado.
	VerifyCategoryCounts bool
	Now                  func() time.Time
}

// Aggregator agregador único del storefront, parametrizado por la fuente de candidatos.
type Aggregator struct {
	catalog   ports.CatalogGateway
	inventory ports.InventoryGateway
	reviews   ports.ReviewGateway
	ratings   RatingLookup
	source    trending.CandidateSource
	directory ports.CategoryDirectory
	log       *logger.Logger
	recorder  ports.DegradationRecorder
	opts      Options
}

// NewAggregator construye el agregador.
func NewAggregator(deps Deps, opts Options) *Aggregator {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.Recorder == nil {
		deps.Recorder = ports.NopRecorder{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Aggregator{
		catalog:   deps.Catalog,
		inventory: deps.Inventory,
		reviews:   deps.Reviews,
		ratings:   deps.Ratings,
		source:    deps.Source,
		directory: deps.Directory,
		log:       deps.Log,
		recorder:  deps.Recorder,
		opts:      opts,
	}
}

// SourceName estrategia de candidatos configurada.
func (a *Aggregator) SourceName() string {
	if a.source == nil {
		return ""
	}
	return a.source.Name()
}

// ResolveCorrelationID devuelve el id recibido o genera "<scope>-<epoch millis>".
// La capa HTTP lo usa para devolver en la respuesta el mismo id que viaja a los upstreams.
func (a *Aggregator) ResolveCorrelationID(given, scope string) string {
	if given != "" {
		return given
	}
	return scope + "-" + strconv.FormatInt(a.opts.Now().UnixMilli(), 10)
}

// detach separa las llamadas upstream de la cancelación de la petición entrante: cada
// llamada conserva solo su propio timeout.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// degrade registra una rama opcional que cayó a sus valores por defecto.
func (a *Aggregator) degrade(branch, correlationID string, err error) {
	a.log.Warn().
		Err(err).
		Str("branch", branch).
		Str("correlation_id", correlationID).
		Msg("rama opcional degradada a valores por defecto")
	a.recorder.RecordDegraded(branch)
}

func invalidLimit(limit int) error {
	return fmt.Errorf("storefront: limit debe ser positivo (recibido %d): %w", limit, domain.ErrInvalidInput)
}
