package entity

import "github.com/shopspring/decimal"

// CategoryStat estadística de una categoría en tendencia según el catálogo.
type CategoryStat struct {
	Name          string          `json:"name"`
	ProductCount  int             `json:"productCount"`
	AveragePrice  decimal.Decimal `json:"averagePrice"`
	TrendingScore float64         `json:"trendingScore"`
}

// CategoryDisplay metadatos de presentación de una categoría (tabla estática).
type CategoryDisplay struct {
	DisplayName string `json:"displayName" yaml:"displayName"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

// CategoryRoute metadatos de navegación de una categoría (tabla estática).
type CategoryRoute struct {
	Department   string `json:"department" yaml:"department"`
	CategoryName string `json:"categoryName" yaml:"categoryName"`
	Path         string `json:"path" yaml:"path"`
}
