package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryInfo disponibilidad resuelta de un producto. Sin registro: InStock=false, cantidad 0.
type InventoryInfo struct {
	InStock           bool `json:"inStock"`
	AvailableQuantity int  `json:"availableQuantity"`
}

// ReviewInfo resumen de reseñas del producto. Sin reseñas: ambos en cero.
type ReviewInfo struct {
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// EnrichedProduct producto del catálogo más inventario y reseñas.
// Todos los campos llegan poblados: cada dato faltante se resuelve a su valor por defecto.
type EnrichedProduct struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	Brand         string          `json:"brand"`
	Images        []string        `json:"images"`
	CreatedAt     time.Time       `json:"createdAt"`
	IsActive      bool            `json:"isActive"`
	Inventory     InventoryInfo   `json:"inventory"`
	Reviews       ReviewInfo      `json:"reviews"`
	TrendingScore float64         `json:"trendingScore"`
	IsRecent      bool            `json:"isRecent"`
}
