package ports

import (
	"context"

	"github.com/jhoicas/storefront-bff/internal/domain/entity"
)

// InventoryGateway puerto de salida hacia el servicio de inventario.
type InventoryGateway interface {
	// GetBatch consulta la disponibilidad de varios SKU en una sola llamada.
	// Los SKU sin registro simplemente no aparecen en el mapa.
	GetBatch(ctx context.Context, skus []string, correlationID string) (map[string]entity.InventoryRecord, error)
}
