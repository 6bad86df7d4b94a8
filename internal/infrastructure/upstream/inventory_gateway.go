package upstream

import (
	"context"

	"github.com/jhoicas/storefront-bff/internal/application/ports"
	"github.com/jhoicas/storefront-bff/internal/domain/entity"
)

var _ ports.InventoryGateway = (*InventoryGateway)(nil)

// InventoryGateway adaptador HTTP del servicio de inventario.
type InventoryGateway struct {
	client *Client
}

// NewInventoryGateway construye el adaptador.
func NewInventoryGateway(client *Client) *InventoryGateway {
	return &InventoryGateway{client: client}
}

type inventoryBatchRequest struct {
	SKUs []string `json:"skus"`
}

// GetBatch lista vacía: mapa vacío sin llamada de red. Si el servicio repite un SKU gana
// el último registro.
func (g *InventoryGateway) GetBatch(ctx context.Context, skus []string, correlationID string) (map[string]entity.InventoryRecord, error) {
	const op = "get_batch"
	if len(skus) == 0 {
		return map[string]entity.InventoryRecord{}, nil
	}
	var records []entity.InventoryRecord
	if err := g.client.Post(ctx, op, "/api/inventory/batch", inventoryBatchRequest{SKUs: skus}, correlationID, Into(&records)); err != nil {
		return nil, err
	}
	out := make(map[string]entity.InventoryRecord, len(records))
	for _, r := range records {
		if r.SKU == "" {
			continue
		}
		out[r.SKU] = r
	}
	return out, nil
}
