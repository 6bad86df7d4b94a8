package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/jhoicas/storefront-bff/internal/application/ports"
	"github.com/jhoicas/storefront-bff/internal/domain"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
)

var _ ports.ReviewGateway = (*ReviewGateway)(nil)

// ReviewGateway adaptador HTTP del servicio de reseñas.
type ReviewGateway struct {
	client *Client
}

// NewReviewGateway construye el adaptador.
func NewReviewGateway(client *Client) *ReviewGateway {
	return &ReviewGateway{client: client}
}

type ratingsBatchRequest struct {
	ProductIDs []string `json:"productIds"`
}

func (g *ReviewGateway) GetProductRatingsBatch(ctx context.Context, productIDs []string, correlationID string) ([]entity.RatingDetails, error) {
	const op = "get_ratings_batch"
	if len(productIDs) == 0 {
		return []entity.RatingDetails{}, nil
	}
	if len(productIDs) > domain.MaxRatingsBatch {
		return nil, fmt.Errorf("reviews: %d ids: %w", len(productIDs), domain.ErrBatchTooLarge)
	}
	out := []entity.RatingDetails{}
	if err := g.client.Post(ctx, op, "/api/reviews/ratings/batch", ratingsBatchRequest{ProductIDs: productIDs}, correlationID, Into(&out)); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProductRating un 404 significa producto sin reseñas: resumen en cero, no error.
func (g *ReviewGateway) GetProductRating(ctx context.Context, productID, correlationID string) (*entity.RatingDetails, error) {
	const op = "get_rating"
	r := entity.ZeroRating(productID)
	err := g.client.Get(ctx, op, "/api/reviews/products/"+url.PathEscape(productID)+"/rating", nil, correlationID, Into(&r))
	if err != nil {
		if IsNotFound(err) {
			return &r, nil
		}
		return nil, err
	}
	return &r, nil
}

func (g *ReviewGateway) ListProductReviews(ctx context.Context, productID string, page, limit int, correlationID string) (*entity.ReviewPage, error) {
	const op = "list_reviews"
	q := url.Values{"page": {strconv.Itoa(page)}, "limit": {strconv.Itoa(limit)}}
	out := &entity.ReviewPage{Reviews: []entity.Review{}, Pagination: entity.Pagination{Page: page, Limit: limit}}
	if err := g.client.Get(ctx, op, "/api/reviews/products/"+url.PathEscape(productID), q, correlationID, Into(out)); err != nil {
		return nil, err
	}
	return out, nil
}
