package entity

// InventoryRecord disponibilidad de un SKU según el servicio de inventario.
// La ausencia de registro para un SKU no es un error: significa disponibilidad desconocida.
type InventoryRecord struct {
	SKU               string `json:"sku"`
	QuantityAvailable int    `json:"quantityAvailable"`
}

// Available devuelve la cantidad disponible nunca negativa.
func (r InventoryRecord) Available() int {
	if r.QuantityAvailable < 0 {
		return 0
	}
	return r.QuantityAvailable
}
