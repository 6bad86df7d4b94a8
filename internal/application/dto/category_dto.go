package dto

import "github.com/shopspring/decimal"

// EnrichedCategory categoría en tendencia con metadatos de presentación y navegación.
type EnrichedCategory struct {
	Name          string          `json:"name"`
	ProductCount  int             `json:"productCount"`
	AveragePrice  decimal.Decimal `json:"averagePrice"`
	TrendingScore float64         `json:"trendingScore"`
	DisplayName   string          `json:"displayName"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	Department    string          `json:"department"`
	CategoryName  string          `json:"categoryName"`
	AccurateCount int             `json:"accurateCount"` // conteo re-verificado o, si no hubo, el reportado
	Path          string          `json:"path"`
}
