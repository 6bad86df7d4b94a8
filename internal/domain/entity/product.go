package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto tal como lo entrega el servicio de catálogo.
// Durante una petición se trata como dato inmutable; el BFF nunca lo modifica ni lo persiste.
type Product struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku,omitempty"` // clave de cruce con inventario; puede venir vacío
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand,omitempty"`
	Images      []string        `json:"images"`
	Tags        []string        `json:"tags,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	IsActive    bool            `json:"isActive"`
}

// HasSKU indica si el producto puede participar en el cruce con inventario.
func (p Product) HasSKU() bool { return p.SKU != "" }
