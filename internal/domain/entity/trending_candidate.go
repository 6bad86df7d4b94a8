package entity

// TrendingCandidate producto evaluado por el motor de tendencias.
// Es transitorio: se crea en cada petición y se descarta al construir la respuesta.
type TrendingCandidate struct {
	RatedProduct
	TrendingScore float64 `json:"trendingScore"`
	IsRecent      bool    `json:"isRecent"`
}
