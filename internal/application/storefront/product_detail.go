package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/storefront-bff/internal/application/dto"
	"github.com/jhoicas/storefront-bff/internal/domain"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
	"github.com/jhoicas/storefront-bff/pkg/settle"
)

// GetProductDetail arma la ficha de producto con tres llamadas en paralelo:
//  1. producto (obligatorio; su fallo es fatal, domain.ErrNotFound si no existe)
//  2. página de reseñas (opcional)
//  3. resumen de calificación precalculado (opcional)
//
// Las ramas opcionales que fallan quedan vacías/en cero y se listan en Degraded.
func (a *Aggregator) GetProductDetail(
	ctx context.Context,
	productID string,
	page, limit int,
	correlationID string,
) (*dto.ProductDetail, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, fmt.Errorf("storefront: id de producto vacío: %w", domain.ErrInvalidInput)
	}
	if page <= 0 || limit <= 0 {
		return nil, fmt.Errorf("storefront: paginación inválida (page=%d, limit=%d): %w", page, limit, domain.ErrInvalidInput)
	}
	correlationID = a.ResolveCorrelationID(correlationID, ScopeProductDetail)
	ctx = detach(ctx)

	prodOut, listOut, sumOut := settle.Run3(
		func() (*entity.Product, error) {
			return a.catalog.GetProduct(ctx, productID, correlationID)
		},
		func() (*entity.ReviewPage, error) {
			return a.reviews.ListProductReviews(ctx, productID, page, limit, correlationID)
		},
		func() (*entity.RatingDetails, error) {
			return a.reviews.GetProductRating(ctx, productID, correlationID)
		},
	)

	if !prodOut.OK() {
		return nil, fmt.Errorf("storefront: producto %s: %w", productID, prodOut.Err)
	}
	if prodOut.Value == nil {
		return nil, fmt.Errorf("storefront: producto %s: %w", productID, domain.ErrNotFound)
	}

	detail := &dto.ProductDetail{
		Product: *prodOut.Value,
		Rating:  entity.ZeroRating(productID),
		Reviews: dto.ReviewList{
			Items:      []entity.Review{},
			Pagination: entity.Pagination{Page: page, Limit: limit},
		},
		Degraded: []string{},
	}
	if detail.Product.Images == nil {
		detail.Product.Images = []string{}
	}

	switch {
	case !listOut.OK():
		a.degrade(BranchReviewList, correlationID, listOut.Err)
		detail.Degraded = append(detail.Degraded, BranchReviewList)
	case listOut.Value != nil:
		if listOut.Value.Reviews != nil {
			detail.Reviews.Items = listOut.Value.Reviews
		}
		if listOut.Value.Pagination.Page > 0 {
			detail.Reviews.Pagination = listOut.Value.Pagination
		}
	}

	switch {
	case !sumOut.OK():
		a.degrade(BranchRatingSummary, correlationID, sumOut.Err)
		detail.Degraded = append(detail.Degraded, BranchRatingSummary)
	case sumOut.Value != nil:
		r := sumOut.Value.Normalize()
		r.ProductID = productID
		detail.Rating = r
	}

	return detail, nil
}
