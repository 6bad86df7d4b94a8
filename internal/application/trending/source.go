package trending

import (
	"context"
	"fmt"

	"github.com/jhoicas/storefront-bff/internal/application/ports"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
)

// Candidates resultado de una fuente de candidatos.
// RatingsAttached indica si cada candidato ya trae su RatingDetails real; si es false
// el agregador debe cruzar las calificaciones por su cuenta.
type Candidates struct {
	Items           []entity.TrendingCandidate
	RatingsAttached bool
}

// CandidateSource estrategia para obtener los productos en tendencia.
type CandidateSource interface {
	Name() string
	Candidates(ctx context.Context, limit int, correlationID string) (Candidates, error)
}

// RatingEnhancer adjunta calificaciones a un lote de productos (ver rating.Enricher).
type RatingEnhancer interface {
	EnhanceWithRatings(ctx context.Context, products []entity.Product, correlationID string) ([]entity.RatedProduct, error)
}

var (
	_ CandidateSource = (*CatalogFeedSource)(nil)
	_ CandidateSource = (*ScoredPoolSource)(nil)
)

// ── Feed del catálogo ─────────────────────────────────────────────────────────

// CatalogFeedSource usa el feed de tendencia que calcula el propio catálogo.
type CatalogFeedSource struct {
	catalog ports.CatalogGateway
}

// NewCatalogFeedSource construye la fuente.
func NewCatalogFeedSource(catalog ports.CatalogGateway) *CatalogFeedSource {
	return &CatalogFeedSource{catalog: catalog}
}

// Name identifica la estrategia en logs.
func (s *CatalogFeedSource) Name() string { return "catalog" }

// Candidates devuelve el feed tal cual, sin calificaciones adjuntas.
func (s *CatalogFeedSource) Candidates(ctx context.Context, limit int, correlationID string) (Candidates, error) {
	products, err := s.catalog.ListTrending(ctx, limit, correlationID)
	if err != nil {
		return Candidates{}, fmt.Errorf("trending: feed del catálogo: %w", err)
	}
	if len(products) > limit {
		products = products[:limit]
	}
	items := make([]entity.TrendingCandidate, 0, len(products))
	for _, p := range products {
		items = append(items, entity.TrendingCandidate{
			RatedProduct: entity.RatedProduct{Product: p, Rating: entity.ZeroRating(p.ID)},
		})
	}
	return Candidates{Items: items}, nil
}

// ── Pool puntuado localmente ─────────────────────────────────────────────────

// ScoredPoolSource pide un pool sobredimensionado (3× el límite) por recencia, lo enriquece
// con calificaciones y selecciona los mejores con el motor de puntuación.
type ScoredPoolSource struct {
	catalog ports.CatalogGateway
	ratings RatingEnhancer
	engine  *Engine
}

// NewScoredPoolSource construye la fuente.
func NewScoredPoolSource(catalog ports.CatalogGateway, ratings RatingEnhancer, engine *Engine) *ScoredPoolSource {
	return &ScoredPoolSource{catalog: catalog, ratings: ratings, engine: engine}
}

// Name identifica la estrategia en logs.
func (s *ScoredPoolSource) Name() string { return "scored" }

// Candidates devuelve hasta limit candidatos puntuados con calificaciones adjuntas.
func (s *ScoredPoolSource) Candidates(ctx context.Context, limit int, correlationID string) (Candidates, error) {
	pool, err := s.catalog.ListRecent(ctx, s.engine.PoolSize(limit), correlationID)
	if err != nil {
		return Candidates{}, fmt.Errorf("trending: pool de candidatos: %w", err)
	}
	if len(pool) == 0 {
		return Candidates{Items: []entity.TrendingCandidate{}, RatingsAttached: true}, nil
	}

	rated, err := s.ratings.EnhanceWithRatings(ctx, pool, correlationID)
	if err != nil {
		return Candidates{}, fmt.Errorf("trending: calificaciones del pool: %w", err)
	}

	return Candidates{Items: s.engine.Select(rated, limit), RatingsAttached: true}, nil
}
