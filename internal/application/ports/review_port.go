package ports

import (
	"context"

	"github.com/jhoicas/storefront-bff/internal/domain/entity"
)

// ReviewGateway puerto de salida hacia el servicio de reseñas.
type ReviewGateway interface {
	// GetProductRatingsBatch obtiene los resúmenes de calificación de hasta 100 productos
	// en una sola llamada. Lista vacía: resultado vacío sin llamada de red.
	// Más de 100 ids: domain.ErrBatchTooLarge antes de cualquier llamada.
	GetProductRatingsBatch(ctx context.Context, productIDs []string, correlationID string) ([]entity.RatingDetails, error)
	// GetProductRating resumen precalculado de un solo producto.
	GetProductRating(ctx context.Context, productID, correlationID string) (*entity.RatingDetails, error)
	// ListProductReviews página de reseñas individuales para la ficha de producto.
	ListProductReviews(ctx context.Context, productID string, page, limit int, correlationID string) (*entity.ReviewPage, error)
}
