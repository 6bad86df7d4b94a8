package storefront

import (
	"context"
	"fmt"

	"github.com/jhoicas/storefront-bff/internal/application/dto"
	"github.com/jhoicas/storefront-bff/internal/domain"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
	"github.com/jhoicas/storefront-bff/pkg/settle"
)

// GetTrendingProducts devuelve los productos en tendencia con inventario y reseñas.
//
// Los candidatos son obligatorios (su fallo se propaga); inventario y calificaciones se piden
// en paralelo y, si alguno falla, sus campos caen a cero sin afectar al otro.
// Lista de candidatos vacía: resultado vacío, no es error.
func (a *Aggregator) GetTrendingProducts(
	ctx context.Context,
	limit int,
	correlationID string,
) ([]dto.EnrichedProduct, error) {
	if limit <= 0 {
		return nil, invalidLimit(limit)
	}
	correlationID = a.ResolveCorrelationID(correlationID, ScopeProductsTrending)
	ctx = detach(ctx)

	cands, err := a.source.Candidates(ctx, limit, correlationID)
	if err != nil {
		return nil, fmt.Errorf("storefront: candidatos en tendencia (%s): %w", a.source.Name(), err)
	}
	if len(cands.Items) == 0 {
		return []dto.EnrichedProduct{}, nil
	}

	skus, ids := joinKeys(cands.Items)
	if !cands.RatingsAttached && len(ids) > domain.MaxRatingsBatch {
		return nil, fmt.Errorf("storefront: %d candidatos: %w", len(ids), domain.ErrBatchTooLarge)
	}

	// ── Fan-out: inventario y calificaciones son independientes ───────────────
	invOut, ratOut := settle.Run2(
		func() (map[string]entity.InventoryRecord, error) {
			if len(skus) == 0 {
				return map[string]entity.InventoryRecord{}, nil
			}
			return a.inventory.GetBatch(ctx, skus, correlationID)
		},
		func() (map[string]entity.RatingDetails, error) {
			if cands.RatingsAttached {
				return nil, nil
			}
			return a.ratings.LookupRatings(ctx, ids, correlationID)
		},
	)

	inventory := invOut.Value
	if !invOut.OK() {
		a.degrade(BranchInventory, correlationID, invOut.Err)
		inventory = nil
	}
	ratings := ratOut.Value
	if !ratOut.OK() {
		a.degrade(BranchRatings, correlationID, ratOut.Err)
		ratings = nil
	}

	// ── Merge por clave ───────────────────────────────────────────────────────
	out := make([]dto.EnrichedProduct, 0, len(cands.Items))
	for _, c := range cands.Items {
		r := c.Rating
		if !cands.RatingsAttached {
			var ok bool
			if r, ok = ratings[c.ID]; !ok {
				r = entity.ZeroRating(c.ID)
			}
		}
		out = append(out, toEnrichedProduct(c, inventoryFor(c.Product, inventory), r))
	}

	a.log.Debug().
		Str("correlation_id", correlationID).
		Str("source", a.source.Name()).
		Int("products", len(out)).
		Msg("productos en tendencia agregados")
	return out, nil
}

// joinKeys SKU (solo productos que lo tienen) e ids de producto, sin duplicados.
func joinKeys(items []entity.TrendingCandidate) (skus, ids []string) {
	seenSKU := make(map[string]struct{}, len(items))
	seenID := make(map[string]struct{}, len(items))
	for _, c := range items {
		if c.HasSKU() {
			if _, ok := seenSKU[c.SKU]; !ok {
				seenSKU[c.SKU] = struct{}{}
				skus = append(skus, c.SKU)
			}
		}
		if c.ID != "" {
			if _, ok := seenID[c.ID]; !ok {
				seenID[c.ID] = struct{}{}
				ids = append(ids, c.ID)
			}
		}
	}
	return skus, ids
}

// inventoryFor resuelve la disponibilidad de un producto; sin SKU o sin registro: agotado, 0.
func inventoryFor(p entity.Product, bySKU map[string]entity.InventoryRecord) dto.InventoryInfo {
	if !p.HasSKU() {
		return dto.InventoryInfo{}
	}
	rec, ok := bySKU[p.SKU]
	if !ok {
		return dto.InventoryInfo{}
	}
	qty := rec.Available()
	return dto.InventoryInfo{InStock: qty > 0, AvailableQuantity: qty}
}

func toEnrichedProduct(c entity.TrendingCandidate, inv dto.InventoryInfo, r entity.RatingDetails) dto.EnrichedProduct {
	r = r.Normalize()
	images := c.Images
	if images == nil {
		images = []string{}
	}
	return dto.EnrichedProduct{
		ID:            c.ID,
		SKU:           c.SKU,
		Name:          c.Name,
		Description:   c.Description,
		Price:         c.Price,
		Category:      c.Category,
		Brand:         c.Brand,
		Images:        images,
		CreatedAt:     c.CreatedAt,
		IsActive:      c.IsActive,
		Inventory:     inv,
		Reviews:       dto.ReviewInfo{AverageRating: r.AverageRating, ReviewCount: r.TotalReviews},
		TrendingScore: c.TrendingScore,
		IsRecent:      c.IsRecent,
	}
}
