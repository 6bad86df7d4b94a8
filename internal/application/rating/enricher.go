// Package rating combina los resúmenes de reseñas con los productos del catálogo.
// Se usa tanto para la ficha de producto como de entrada al motor de tendencias.
package rating

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/storefront-bff/internal/application/ports"
	"github.com/jhoicas/storefront-bff/internal/domain"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
	"github.com/jhoicas/storefront-bff/pkg/logger"
)

// BranchRatings nombre de la rama opcional de calificaciones en logs y métricas.
const BranchRatings = "ratings"

// Enricher unidad de enriquecimiento de calificaciones.
//
// Costo: una sola llamada al servicio de reseñas por lote, sin importar cuántos productos haya.
// Las calificaciones son un dato de enriquecimiento, no obligatorio: si el lote falla, cada
// producto recibe el resumen en cero y el error no se propaga.
type Enricher struct {
	reviews  ports.ReviewGateway
	log      *logger.Logger
	recorder ports.DegradationRecorder
}

// NewEnricher construye la unidad. recorder puede ser nil.
func NewEnricher(reviews ports.ReviewGateway, log *logger.Logger, recorder ports.DegradationRecorder) *Enricher {
	if log == nil {
		log = logger.Nop()
	}
	if recorder == nil {
		recorder = ports.NopRecorder{}
	}
	return &Enricher{reviews: reviews, log: log, recorder: recorder}
}

// EnhanceWithRatings adjunta a cada producto su RatingDetails, conservando el orden de entrada.
//
// Único error posible: domain.ErrBatchTooLarge cuando llegan más de 100 productos; se
// rechaza antes de llamar al servicio y no se reintenta.
func (e *Enricher) EnhanceWithRatings(
	ctx context.Context,
	products []entity.Product,
	correlationID string,
) ([]entity.RatedProduct, error) {
	if len(products) > domain.MaxRatingsBatch {
		return nil, fmt.Errorf("rating: %d productos: %w", len(products), domain.ErrBatchTooLarge)
	}
	out := make([]entity.RatedProduct, 0, len(products))
	if len(products) == 0 {
		return out, nil
	}

	byID, err := e.fetch(ctx, productIDs(products), correlationID)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		r, ok := byID[p.ID]
		if !ok {
			r = entity.ZeroRating(p.ID)
		}
		out = append(out, entity.RatedProduct{Product: p, Rating: r})
	}
	return out, nil
}

// LookupRatings devuelve un mapa productID → RatingDetails con un valor (posiblemente en cero)
// para cada id solicitado. Mismas reglas de validación y degradación que EnhanceWithRatings.
func (e *Enricher) LookupRatings(
	ctx context.Context,
	ids []string,
	correlationID string,
) (map[string]entity.RatingDetails, error) {
	if len(ids) > domain.MaxRatingsBatch {
		return nil, fmt.Errorf("rating: %d ids: %w", len(ids), domain.ErrBatchTooLarge)
	}
	byID, err := e.fetch(ctx, dedupe(ids), correlationID)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			byID[id] = entity.ZeroRating(id)
		}
	}
	return byID, nil
}

func (e *Enricher) fetch(ctx context.Context, ids []string, correlationID string) (map[string]entity.RatingDetails, error) {
	byID := make(map[string]entity.RatingDetails, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	ratings, err := e.reviews.GetProductRatingsBatch(ctx, ids, correlationID)
	if err != nil {
		if errors.Is(err, domain.ErrBatchTooLarge) {
			return nil, err
		}
		e.log.Warn().
			Err(err).
			Str("correlation_id", correlationID).
			Int("products", len(ids)).
			Msg("calificaciones no disponibles, se usan valores en cero")
		e.recorder.RecordDegraded(BranchRatings)
		return byID, nil
	}

	for _, r := range ratings {
		if r.ProductID == "" {
			continue
		}
		byID[r.ProductID] = r.Normalize()
	}
	return byID, nil
}

// productIDs ids únicos y no vacíos en orden de aparición.
func productIDs(products []entity.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return dedupe(ids)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
