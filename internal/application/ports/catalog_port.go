package ports

import (
	"context"

	"github.com/jhoicas/storefront-bff/internal/domain/entity"
)

// CatalogGateway puerto de salida hacia el servicio de catálogo.
// Todas las operaciones son de solo lectura y cada llamada lleva su propio timeout;
// cualquier fallo de transporte, timeout o respuesta no-2xx se devuelve como error.
type CatalogGateway interface {
	// ListTrending devuelve el feed de tendencia calculado por el propio catálogo.
	ListTrending(ctx context.Context, limit int, correlationID string) ([]entity.Product, error)
	// ListRecent devuelve productos activos ordenados por fecha de creación descendente.
	ListRecent(ctx context.Context, limit int, correlationID string) ([]entity.Product, error)
	// GetProduct obtiene un producto; domain.ErrNotFound si no existe.
	GetProduct(ctx context.Context, id, correlationID string) (*entity.Product, error)
	ListTrendingCategories(ctx context.Context, limit int, correlationID string) ([]entity.CategoryStat, error)
	ListCategories(ctx context.Context, correlationID string) ([]string, error)
	// CountByCategory conteo autoritativo de productos para un departamento/categoría.
	CountByCategory(ctx context.Context, department, category, correlationID string) (int, error)
}
